package services

import (
	"context"
	"fmt"
	"math/big"

	"github.com/estate-agency/frontend/internal/chain"
	"github.com/estate-agency/frontend/internal/models"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// PaymentService covers the money-moving actions: purchase, withdraw and balance reads.
type PaymentService struct {
	contract      ContractCaller
	accounts      AccountBackend
	estates       *EstateService
	txs           *TxService
	priceDecimals int
	log           *zap.Logger
}

func NewPaymentService(
	contract ContractCaller,
	accounts AccountBackend,
	estates *EstateService,
	txs *TxService,
	priceDecimals int,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{
		contract:      contract,
		accounts:      accounts,
		estates:       estates,
		txs:           txs,
		priceDecimals: priceDecimals,
		log:           log,
	}
}

func (s *PaymentService) PriceDecimals() int {
	return s.priceDecimals
}

// ContractBalance returns the balance the contract holds for the caller.
func (s *PaymentService) ContractBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	out, err := s.contract.Call(ctx, account, chain.MethodGetBalance)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("getBalance: expected 1 value, got %d", len(out))
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("getBalance: unexpected type %T", out[0])
	}
	return balance, nil
}

// PurchaseEstate pays the ad price, scaled to wei, from the buyer's account.
// No transaction is submitted when the native balance is below the price.
func (s *PaymentService) PurchaseEstate(ctx context.Context, buyer common.Address, adID *big.Int) (common.Hash, error) {
	ad, err := s.estates.GetAd(ctx, adID)
	if err != nil {
		return common.Hash{}, err
	}
	priceWei := chain.ToWei(ad.Price, s.priceDecimals)

	balance, err := s.accounts.BalanceAt(ctx, buyer)
	if err != nil {
		return common.Hash{}, err
	}
	if balance.Cmp(priceWei) < 0 {
		s.log.Debug("purchase rejected: insufficient funds",
			zap.String("account", buyer.Hex()),
			zap.String("price_wei", priceWei.String()),
			zap.String("balance_wei", balance.String()),
		)
		return common.Hash{}, ErrInsufficientFunds
	}

	hash, err := s.contract.Transact(ctx, buyer, priceWei, chain.MethodPurchaseEstate, adID)
	if err != nil {
		return common.Hash{}, err
	}
	s.txs.Record(ctx, buyer, models.TxActionPurchaseEstate, hash, priceWei)
	return hash, nil
}

// WithdrawFunds withdraws exactly the current contract balance of the account.
func (s *PaymentService) WithdrawFunds(ctx context.Context, account common.Address) (common.Hash, error) {
	balance, err := s.ContractBalance(ctx, account)
	if err != nil {
		return common.Hash{}, err
	}
	if balance.Sign() == 0 {
		return common.Hash{}, ErrNoFunds
	}

	hash, err := s.contract.Transact(ctx, account, nil, chain.MethodWithdraw, balance)
	if err != nil {
		return common.Hash{}, err
	}
	s.txs.Record(ctx, account, models.TxActionWithdrawFunds, hash, balance)
	return hash, nil
}
