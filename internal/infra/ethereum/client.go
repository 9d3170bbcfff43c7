// internal/infra/ethereum/client.go
package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"

	"github.com/egornomic/aavegotchi-pet-sitter/internal/domain/gotchi"
)

// aavegotchiInfo mirrors the AavegotchiInfo return tuple of getAavegotchi.
// Field names must match the ABI component names for unpacking.
type aavegotchiInfo struct {
	TokenId               *big.Int
	Name                  string
	Owner                 common.Address
	RandomNumber          *big.Int
	Status                *big.Int
	NumericTraits         [6]int16
	ModifiedNumericTraits [6]int16
	EquippedWearables     [16]uint16
	Collateral            common.Address
	Escrow                common.Address
	StakedAmount          *big.Int
	MinimumStake          *big.Int
	Kinship               *big.Int
	LastInteracted        *big.Int
	Experience            *big.Int
	ToNextLevel           *big.Int
	UsedSkillPoints       *big.Int
	Level                 *big.Int
	HauntId               *big.Int
	BaseRarityScore       *big.Int
	ModifiedRarityScore   *big.Int
	Locked                bool
}

// DiamondClient implements the ledger.Client interface against the Aavegotchi
// diamond contract over JSON-RPC.
type DiamondClient struct {
	eth        *ethclient.Client
	contract   *bind.BoundContract
	parsedABI  abi.ABI
	diamond    common.Address
	from       common.Address
	transactor *bind.TransactOpts
	logger     *logrus.Logger
}

// NewDiamondClient dials the RPC node, parses the minimal diamond ABI and
// builds a keyed transactor for the configured private key.
func NewDiamondClient(ctx context.Context, rpcURL, diamondAddress, privateKeyHex string, logger *logrus.Logger) (*DiamondClient, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RPC node: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(DiamondABI))
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("failed to parse diamond ABI: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("failed to query chain id: %w", err)
	}

	transactor, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}

	diamond := common.HexToAddress(diamondAddress)
	contract := bind.NewBoundContract(diamond, parsed, eth, eth, eth)

	logger.Infof("Connected to chain %s, diamond %s, signer %s", chainID, diamond.Hex(), transactor.From.Hex())

	return &DiamondClient{
		eth:        eth,
		contract:   contract,
		parsedABI:  parsed,
		diamond:    diamond,
		from:       transactor.From,
		transactor: transactor,
		logger:     logger,
	}, nil
}

// GotchiIDsOfOwner enumerates every gotchi token id held by owner.
func (c *DiamondClient) GotchiIDsOfOwner(ctx context.Context, owner common.Address) ([]gotchi.ID, error) {
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx}
	if err := c.contract.Call(opts, &out, "tokenIdsOfOwner", owner); err != nil {
		return nil, fmt.Errorf("tokenIdsOfOwner call failed: %w", err)
	}
	raw := *abi.ConvertType(out[0], new([]uint32)).(*[]uint32)

	ids := make([]gotchi.ID, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, gotchi.ID(id))
	}
	return ids, nil
}

// GetGotchi fetches the on-chain detail for a single gotchi.
func (c *DiamondClient) GetGotchi(ctx context.Context, id gotchi.ID) (*gotchi.Gotchi, error) {
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx}
	if err := c.contract.Call(opts, &out, "getAavegotchi", new(big.Int).SetUint64(uint64(id))); err != nil {
		return nil, fmt.Errorf("getAavegotchi(%d) call failed: %w", id, err)
	}
	info := *abi.ConvertType(out[0], new(aavegotchiInfo)).(*aavegotchiInfo)

	return &gotchi.Gotchi{
		ID:             id,
		Name:           info.Name,
		Status:         uint8(info.Status.Uint64()),
		LastInteracted: time.Unix(info.LastInteracted.Int64(), 0),
		KinshipScore:   info.Kinship.Int64(),
	}, nil
}

// Pet submits one interact transaction covering all ids and waits for it to
// be mined.
func (c *DiamondClient) Pet(ctx context.Context, ids []gotchi.ID) (string, error) {
	opts := *c.transactor
	opts.Context = ctx

	tx, err := c.contract.Transact(&opts, "interact", toBigInts(ids))
	if err != nil {
		return "", fmt.Errorf("interact submission failed: %w", err)
	}
	c.logger.Debugf("interact tx %s submitted, waiting for confirmation", tx.Hash().Hex())

	receipt, err := bind.WaitMined(ctx, c.eth, tx)
	if err != nil {
		return "", fmt.Errorf("interact tx %s confirmation failed: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return "", fmt.Errorf("interact tx %s reverted", tx.Hash().Hex())
	}
	return tx.Hash().Hex(), nil
}

// EstimatePetGas estimates the gas cost of petting the given ids.
func (c *DiamondClient) EstimatePetGas(ctx context.Context, ids []gotchi.ID) (uint64, error) {
	data, err := c.parsedABI.Pack("interact", toBigInts(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to pack interact call: %w", err)
	}
	gas, err := c.eth.EstimateGas(ctx, geth.CallMsg{From: c.from, To: &c.diamond, Data: data})
	if err != nil {
		return 0, fmt.Errorf("gas estimation failed: %w", err)
	}
	return gas, nil
}

// CheckConnectivity reports whether the RPC node answers at all.
func (c *DiamondClient) CheckConnectivity(ctx context.Context) bool {
	_, err := c.eth.BlockNumber(ctx)
	return err == nil
}

// BlockNumber returns the current chain height.
func (c *DiamondClient) BlockNumber(ctx context.Context) (uint64, error) {
	return c.eth.BlockNumber(ctx)
}

// Close releases the underlying RPC connection.
func (c *DiamondClient) Close() {
	c.eth.Close()
}

func toBigInts(ids []gotchi.ID) []*big.Int {
	out := make([]*big.Int, 0, len(ids))
	for _, id := range ids {
		out = append(out, new(big.Int).SetUint64(uint64(id)))
	}
	return out
}
