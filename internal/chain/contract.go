package chain

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Contract method names of the estate agency contract.
const (
	MethodCreateEstate       = "createEstate"
	MethodCreateAd           = "createAd"
	MethodUpdateEstateStatus = "updateEstateStatus"
	MethodUpdateAdStatus     = "updateAdStatus"
	MethodPurchaseEstate     = "purchaseEstate"
	MethodWithdraw           = "withdraw"
	MethodGetBalance         = "getBalance"
	MethodEstates            = "estates"
	MethodAds                = "ads"
)

//go:embed estate_agency.abi.json
var defaultABI []byte

// Backend is the subset of the node client used by Contract.
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
	SendTransaction(ctx context.Context, args TxArgs) (common.Hash, error)
}

// Contract binds an address and ABI to a node backend.
type Contract struct {
	address common.Address
	abi     abi.ABI
	backend Backend
}

func NewContract(address common.Address, abiJSON []byte, backend Backend) (*Contract, error) {
	parsed, err := abi.JSON(bytes.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("parse contract abi: %w", err)
	}
	return &Contract{address: address, abi: parsed, backend: backend}, nil
}

// LoadABI reads the ABI from path, or returns the embedded one when path is empty.
func LoadABI(path string) ([]byte, error) {
	if path == "" {
		return defaultABI, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contract abi %s: %w", path, err)
	}
	return data, nil
}

func (c *Contract) Address() common.Address {
	return c.address
}

// Call executes a read-only method as from and returns the decoded outputs.
func (c *Contract) Call(ctx context.Context, from common.Address, method string, args ...any) ([]any, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	to := c.address
	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{From: from, To: &to, Data: data})
	if err != nil {
		return nil, err
	}

	values, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

// Transact submits a state-changing call from the given account.
// value may be nil for non-payable methods.
func (c *Contract) Transact(ctx context.Context, from common.Address, value *big.Int, method string, args ...any) (common.Hash, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("pack %s: %w", method, err)
	}

	to := c.address
	txArgs := TxArgs{From: from, To: &to, Data: data}
	if value != nil && value.Sign() > 0 {
		txArgs.Value = (*hexutil.Big)(value)
	}
	return c.backend.SendTransaction(ctx, txArgs)
}
