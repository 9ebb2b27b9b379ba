package chain

// JSON-RPC client for an Ethereum-compatible node.
// Accounts are kept by the node itself: unlock and creation go through the
// geth personal namespace, writes go through eth_sendTransaction from an
// unlocked account.

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// ErrUnlockRejected is returned when the node answers personal_unlockAccount with false.
var ErrUnlockRejected = errors.New("account unlock rejected by node")

// TxArgs mirrors the eth_sendTransaction request object.
// Gas and price are left to the node.
type TxArgs struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to,omitempty"`
	Data  hexutil.Bytes   `json:"data,omitempty"`
	Value *hexutil.Big    `json:"value,omitempty"`
}

type Client struct {
	rpc *rpc.Client
	eth *ethclient.Client
	log *zap.Logger
}

func Dial(ctx context.Context, url string, log *zap.Logger) (*Client, error) {
	rc, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial node %s: %w", url, err)
	}

	log.Info("connected to node", zap.String("url", url))
	return &Client{rpc: rc, eth: ethclient.NewClient(rc), log: log}, nil
}

func (c *Client) Close() {
	c.rpc.Close()
}

// UnlockAccount unlocks a node-managed account for the node's default duration.
func (c *Client) UnlockAccount(ctx context.Context, account common.Address, password string) error {
	var ok bool
	if err := c.rpc.CallContext(ctx, &ok, "personal_unlockAccount", account, password, nil); err != nil {
		return err
	}
	if !ok {
		return ErrUnlockRejected
	}
	return nil
}

// NewAccount creates a new key in the node keystore protected by password.
func (c *Client) NewAccount(ctx context.Context, password string) (common.Address, error) {
	var addr common.Address
	if err := c.rpc.CallContext(ctx, &addr, "personal_newAccount", password); err != nil {
		return common.Address{}, err
	}
	return addr, nil
}

// BalanceAt returns the native balance in wei at the latest block.
func (c *Client) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	return c.eth.BalanceAt(ctx, account, nil)
}

func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	return c.eth.CallContract(ctx, msg, nil)
}

// SendTransaction submits a transaction signed by the node and returns its hash.
func (c *Client) SendTransaction(ctx context.Context, args TxArgs) (common.Hash, error) {
	var hash common.Hash
	if err := c.rpc.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return common.Hash{}, err
	}
	c.log.Debug("transaction sent",
		zap.String("from", args.From.Hex()),
		zap.String("hash", hash.Hex()),
	)
	return hash, nil
}

// TransactionReceipt returns ethereum.NotFound while the transaction is pending.
func (c *Client) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return c.eth.TransactionReceipt(ctx, hash)
}
