package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	RPCURL              string
	DiamondAddress      string
	GotchiOwnerAddress  string
	PrivateKey          string
	TelegramToken       string
	OperatorChatID      int64
	DatabaseURL         string // optional; empty disables pet history
	PetCooldown         time.Duration
	PetTickInterval     time.Duration
	HealthCheckInterval time.Duration
	ControlPetDelay     time.Duration
	LogLevel            string
	Environment         string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.RPCURL = os.Getenv("RPC_URL")
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("RPC_URL is not set")
	}

	cfg.DiamondAddress = os.Getenv("DIAMOND_ADDRESS")
	if cfg.DiamondAddress == "" {
		return nil, fmt.Errorf("DIAMOND_ADDRESS is not set")
	}
	if !common.IsHexAddress(cfg.DiamondAddress) {
		return nil, fmt.Errorf("invalid DIAMOND_ADDRESS: %s", cfg.DiamondAddress)
	}

	cfg.GotchiOwnerAddress = os.Getenv("GOTCHI_OWNER_ADDRESS")
	if cfg.GotchiOwnerAddress == "" {
		return nil, fmt.Errorf("GOTCHI_OWNER_ADDRESS is not set")
	}
	if !common.IsHexAddress(cfg.GotchiOwnerAddress) {
		return nil, fmt.Errorf("invalid GOTCHI_OWNER_ADDRESS: %s", cfg.GotchiOwnerAddress)
	}

	cfg.PrivateKey = strings.TrimPrefix(os.Getenv("PRIVATE_KEY"), "0x")
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("PRIVATE_KEY is not set")
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	chatIDStr := os.Getenv("OPERATOR_CHAT_ID")
	if chatIDStr == "" {
		return nil, fmt.Errorf("OPERATOR_CHAT_ID is not set")
	}
	cfg.OperatorChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OPERATOR_CHAT_ID: %w", err)
	}

	// Optional: pet history is skipped when unset.
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cooldownStr := os.Getenv("PET_COOLDOWN_SECONDS")
	if cooldownStr == "" {
		cooldownStr = "43200" // Default: the 12h on-chain pet cooldown
	}
	cooldownSecs, err := strconv.ParseInt(cooldownStr, 10, 64)
	if err != nil || cooldownSecs <= 0 {
		return nil, fmt.Errorf("invalid PET_COOLDOWN_SECONDS: %s", cooldownStr)
	}
	cfg.PetCooldown = time.Duration(cooldownSecs) * time.Second

	cfg.PetTickInterval, err = durationEnv("PET_TICK_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HealthCheckInterval, err = durationEnv("HEALTH_CHECK_INTERVAL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.ControlPetDelay, err = durationEnv("CONTROL_PET_DELAY", 90*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %s", name, raw)
	}
	return d, nil
}
