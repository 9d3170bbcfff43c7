package ethereum

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egornomic/aavegotchi-pet-sitter/internal/domain/gotchi"
)

func TestDiamondABIParses(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(DiamondABI))
	require.NoError(t, err)

	for _, name := range []string{"tokenIdsOfOwner", "getAavegotchi", "interact"} {
		_, ok := parsed.Methods[name]
		assert.True(t, ok, "method %s missing from diamond ABI", name)
	}
}

func TestPackInteract(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(DiamondABI))
	require.NoError(t, err)

	data, err := parsed.Pack("interact", []*big.Int{big.NewInt(1), big.NewInt(2)})
	require.NoError(t, err)

	// 4-byte selector + array offset + length + two elements.
	assert.Len(t, data, 4+32*4)
}

func TestToBigInts(t *testing.T) {
	out := toBigInts([]gotchi.ID{7, 21655})
	require.Len(t, out, 2)
	assert.Equal(t, int64(7), out[0].Int64())
	assert.Equal(t, int64(21655), out[1].Int64())
}
