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

// EstateService maps estate and ad actions onto single contract calls.
type EstateService struct {
	contract ContractCaller
	txs      *TxService
	log      *zap.Logger
}

func NewEstateService(contract ContractCaller, txs *TxService, log *zap.Logger) *EstateService {
	return &EstateService{contract: contract, txs: txs, log: log}
}

func (s *EstateService) CreateEstate(ctx context.Context, from common.Address, d models.EstateDraft) (common.Hash, error) {
	hash, err := s.contract.Transact(ctx, from, nil, chain.MethodCreateEstate,
		d.Name, d.Address, uint8(d.Type), d.Rooms, d.Description)
	if err != nil {
		return common.Hash{}, err
	}
	s.txs.Record(ctx, from, models.TxActionCreateEstate, hash, nil)
	return hash, nil
}

func (s *EstateService) CreateAd(ctx context.Context, from common.Address, d models.AdDraft) (common.Hash, error) {
	hash, err := s.contract.Transact(ctx, from, nil, chain.MethodCreateAd, d.EstateID, d.Price, d.DateTime)
	if err != nil {
		return common.Hash{}, err
	}
	s.txs.Record(ctx, from, models.TxActionCreateAd, hash, nil)
	return hash, nil
}

// UpdateEstateStatus parses the "true"/"false" token before any call is issued.
func (s *EstateService) UpdateEstateStatus(ctx context.Context, from common.Address, estateID *big.Int, token string) (common.Hash, error) {
	active, err := models.ParseEstateStatus(token)
	if err != nil {
		return common.Hash{}, err
	}

	hash, err := s.contract.Transact(ctx, from, nil, chain.MethodUpdateEstateStatus, estateID, active)
	if err != nil {
		return common.Hash{}, err
	}
	s.txs.Record(ctx, from, models.TxActionUpdateEstateStatus, hash, nil)
	return hash, nil
}

// UpdateAdStatus parses the "Opened"/"Closed" token before any call is issued.
func (s *EstateService) UpdateAdStatus(ctx context.Context, from common.Address, adID *big.Int, token string) (common.Hash, error) {
	status, err := models.ParseAdStatus(token)
	if err != nil {
		return common.Hash{}, err
	}

	hash, err := s.contract.Transact(ctx, from, nil, chain.MethodUpdateAdStatus, adID, uint8(status))
	if err != nil {
		return common.Hash{}, err
	}
	s.txs.Record(ctx, from, models.TxActionUpdateAdStatus, hash, nil)
	return hash, nil
}

func (s *EstateService) GetEstate(ctx context.Context, id *big.Int) (*models.Estate, error) {
	out, err := s.contract.Call(ctx, common.Address{}, chain.MethodEstates, id)
	if err != nil {
		return nil, err
	}
	return decodeEstate(id, out)
}

func (s *EstateService) GetAd(ctx context.Context, id *big.Int) (*models.Ad, error) {
	out, err := s.contract.Call(ctx, common.Address{}, chain.MethodAds, id)
	if err != nil {
		return nil, err
	}
	return decodeAd(id, out)
}

func decodeEstate(id *big.Int, out []any) (*models.Estate, error) {
	if len(out) != 7 {
		return nil, fmt.Errorf("estates: expected 7 values, got %d", len(out))
	}

	e := &models.Estate{ID: id}
	var ok [7]bool
	e.Name, ok[0] = out[0].(string)
	e.Address, ok[1] = out[1].(string)
	var typ uint8
	typ, ok[2] = out[2].(uint8)
	e.Type = models.EstateType(typ)
	e.Rooms, ok[3] = out[3].(*big.Int)
	e.Description, ok[4] = out[4].(string)
	e.Owner, ok[5] = out[5].(common.Address)
	e.IsActive, ok[6] = out[6].(bool)

	for i, v := range ok {
		if !v {
			return nil, fmt.Errorf("estates: unexpected type %T at position %d", out[i], i)
		}
	}
	return e, nil
}

func decodeAd(id *big.Int, out []any) (*models.Ad, error) {
	if len(out) != 5 {
		return nil, fmt.Errorf("ads: expected 5 values, got %d", len(out))
	}

	a := &models.Ad{ID: id}
	var ok [5]bool
	a.Owner, ok[0] = out[0].(common.Address)
	a.EstateID, ok[1] = out[1].(*big.Int)
	a.Price, ok[2] = out[2].(*big.Int)
	a.DateTime, ok[3] = out[3].(*big.Int)
	var status uint8
	status, ok[4] = out[4].(uint8)
	a.Status = models.AdStatus(status)

	for i, v := range ok {
		if !v {
			return nil, fmt.Errorf("ads: unexpected type %T at position %d", out[i], i)
		}
	}
	return a, nil
}
