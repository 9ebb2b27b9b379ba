package services

import (
	"context"
	"math/big"
	"sync"

	"github.com/estate-agency/frontend/internal/events"
	"github.com/estate-agency/frontend/internal/models"
	"github.com/ethereum/go-ethereum/common"
)

type transactCall struct {
	from   common.Address
	value  *big.Int
	method string
	args   []any
}

type fakeContract struct {
	results     map[string][]any
	callErr     error
	transactErr error
	hash        common.Hash
	calls       []string
	callFrom    []common.Address
	transacts   []transactCall
}

func (f *fakeContract) Call(_ context.Context, from common.Address, method string, _ ...any) ([]any, error) {
	f.calls = append(f.calls, method)
	f.callFrom = append(f.callFrom, from)
	if f.callErr != nil {
		return nil, f.callErr
	}
	return f.results[method], nil
}

func (f *fakeContract) Transact(_ context.Context, from common.Address, value *big.Int, method string, args ...any) (common.Hash, error) {
	f.transacts = append(f.transacts, transactCall{from: from, value: value, method: method, args: args})
	if f.transactErr != nil {
		return common.Hash{}, f.transactErr
	}
	return f.hash, nil
}

type fakeAccounts struct {
	unlockErr  error
	newAddr    common.Address
	newErr     error
	balance    *big.Int
	balanceErr error
	unlocked   []common.Address
	created    int
}

func (f *fakeAccounts) UnlockAccount(_ context.Context, account common.Address, _ string) error {
	f.unlocked = append(f.unlocked, account)
	return f.unlockErr
}

func (f *fakeAccounts) NewAccount(_ context.Context, _ string) (common.Address, error) {
	f.created++
	return f.newAddr, f.newErr
}

func (f *fakeAccounts) BalanceAt(_ context.Context, _ common.Address) (*big.Int, error) {
	return f.balance, f.balanceErr
}

type fakeJournal struct {
	records   []models.TxRecord
	createErr error
}

func (f *fakeJournal) Create(_ context.Context, tx *models.TxRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records = append(f.records, *tx)
	return nil
}

func (f *fakeJournal) ListByAccount(_ context.Context, account string, _ int) ([]models.TxRecord, error) {
	var out []models.TxRecord
	for _, r := range f.records {
		if r.Account == account {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeAudit struct {
	entries []models.AuditLog
}

func (f *fakeAudit) Log(_ context.Context, entry models.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(_ context.Context, _ string, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}
