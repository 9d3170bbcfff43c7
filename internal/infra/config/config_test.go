package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RPC_URL", "https://polygon-rpc.example")
	t.Setenv("DIAMOND_ADDRESS", "0x86935F11C86623deC8a25696E1C19a8659CbF95d")
	t.Setenv("GOTCHI_OWNER_ADDRESS", "0x00000000000000000000000000000000000000aa")
	t.Setenv("PRIVATE_KEY", "0xabcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789")
	t.Setenv("TELEGRAM_TOKEN", "123:token")
	t.Setenv("OPERATOR_CHAT_ID", "42")
	// Clear optional vars so defaults are exercised regardless of host env.
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PET_COOLDOWN_SECONDS", "")
	t.Setenv("PET_TICK_INTERVAL", "")
	t.Setenv("HEALTH_CHECK_INTERVAL", "")
	t.Setenv("CONTROL_PET_DELAY", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ENVIRONMENT", "")
}

func TestLoad_AppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12*time.Hour, cfg.PetCooldown)
	assert.Equal(t, time.Minute, cfg.PetTickInterval)
	assert.Equal(t, 10*time.Minute, cfg.HealthCheckInterval)
	assert.Equal(t, 90*time.Second, cfg.ControlPetDelay)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, int64(42), cfg.OperatorChatID)
}

func TestLoad_StripsPrivateKeyPrefix(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "abcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789", cfg.PrivateKey)
}

func TestLoad_ParsesOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PET_COOLDOWN_SECONDS", "3600")
	t.Setenv("PET_TICK_INTERVAL", "30s")
	t.Setenv("HEALTH_CHECK_INTERVAL", "1m")
	t.Setenv("CONTROL_PET_DELAY", "2m")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.PetCooldown)
	assert.Equal(t, 30*time.Second, cfg.PetTickInterval)
	assert.Equal(t, time.Minute, cfg.HealthCheckInterval)
	assert.Equal(t, 2*time.Minute, cfg.ControlPetDelay)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingRequiredVars(t *testing.T) {
	required := []string{"RPC_URL", "DIAMOND_ADDRESS", "GOTCHI_OWNER_ADDRESS", "PRIVATE_KEY", "TELEGRAM_TOKEN", "OPERATOR_CHAT_ID"}
	for _, name := range required {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(name, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Run("bad owner address", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("GOTCHI_OWNER_ADDRESS", "not-an-address")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("bad cooldown", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PET_COOLDOWN_SECONDS", "-5")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("bad tick interval", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PET_TICK_INTERVAL", "soon")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("bad chat id", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("OPERATOR_CHAT_ID", "operator")
		_, err := Load()
		require.Error(t, err)
	})
}
