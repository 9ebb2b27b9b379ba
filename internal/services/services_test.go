package services

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/estate-agency/frontend/internal/auth"
	"github.com/estate-agency/frontend/internal/chain"
	"github.com/estate-agency/frontend/internal/events"
	"github.com/estate-agency/frontend/internal/models"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

var (
	buyer   = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	seller  = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	txHash  = common.HexToHash("0xfeed")
	ctx     = context.Background()
	nopLog  = zap.NewNop()
	errNode = errors.New("connection refused")
)

type fixture struct {
	contract  *fakeContract
	accounts  *fakeAccounts
	journal   *fakeJournal
	publisher *fakePublisher
	estates   *EstateService
	payments  *PaymentService
}

func newFixture() *fixture {
	f := &fixture{
		contract:  &fakeContract{results: map[string][]any{}, hash: txHash},
		accounts:  &fakeAccounts{balance: big.NewInt(0)},
		journal:   &fakeJournal{},
		publisher: &fakePublisher{},
	}
	txs := NewTxService(f.journal, f.publisher, nopLog)
	f.estates = NewEstateService(f.contract, txs, nopLog)
	f.payments = NewPaymentService(f.contract, f.accounts, f.estates, txs, 18, nopLog)
	return f
}

func adOutput(price int64) []any {
	return []any{seller, big.NewInt(1), big.NewInt(price), big.NewInt(1700000000), uint8(0)}
}

func TestAccountService_Register(t *testing.T) {
	newAddr := common.HexToAddress("0x00000000000000000000000000000000000000d1")

	t.Run("weak password issues no call", func(t *testing.T) {
		accounts := &fakeAccounts{newAddr: newAddr}
		s := NewAccountService(accounts, nil, nopLog)

		_, err := s.Register(ctx, "abcdefg1234!")
		if !errors.Is(err, auth.ErrWeakPassword) {
			t.Fatalf("expected ErrWeakPassword, got %v", err)
		}
		if accounts.created != 0 {
			t.Error("no account must be created for a weak password")
		}
	})

	t.Run("strong password", func(t *testing.T) {
		accounts := &fakeAccounts{newAddr: newAddr}
		audit := &fakeAudit{}
		s := NewAccountService(accounts, audit, nopLog)

		addr, err := s.Register(ctx, "Abcdefg1234!")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if addr != newAddr {
			t.Errorf("addr = %s, want %s", addr.Hex(), newAddr.Hex())
		}
		if len(audit.entries) != 1 || audit.entries[0].Action != models.AuditAccountCreated {
			t.Errorf("expected account_created audit entry, got %v", audit.entries)
		}
	})

	t.Run("client failure", func(t *testing.T) {
		s := NewAccountService(&fakeAccounts{newErr: errNode}, nil, nopLog)
		if _, err := s.Register(ctx, "Abcdefg1234!"); !errors.Is(err, errNode) {
			t.Fatalf("expected node error, got %v", err)
		}
	})
}

func TestAccountService_Login(t *testing.T) {
	accounts := &fakeAccounts{}
	audit := &fakeAudit{}
	s := NewAccountService(accounts, audit, nopLog)

	if err := s.Login(ctx, buyer, "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts.unlocked) != 1 || accounts.unlocked[0] != buyer {
		t.Errorf("expected unlock of %s", buyer.Hex())
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != models.AuditAccountUnlocked {
		t.Errorf("expected account_unlocked audit entry")
	}

	accounts.unlockErr = errors.New("could not decrypt key with given password")
	if err := s.Login(ctx, buyer, "bad"); err == nil || err.Error() != "could not decrypt key with given password" {
		t.Fatalf("expected raw node error, got %v", err)
	}
	if len(audit.entries) != 1 {
		t.Error("failed unlock must not be audited")
	}
}

func TestEstateService_CreateEstate(t *testing.T) {
	f := newFixture()
	draft := models.EstateDraft{
		Name: "Villa", Address: "Main st. 1", Type: models.EstateTypeLoft,
		Rooms: big.NewInt(4), Description: "sea view",
	}

	hash, err := f.estates.CreateEstate(ctx, seller, draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash != txHash {
		t.Errorf("hash = %s", hash.Hex())
	}

	call := f.contract.transacts[0]
	if call.method != chain.MethodCreateEstate || call.from != seller {
		t.Errorf("unexpected call %+v", call)
	}
	if call.args[2].(uint8) != 3 {
		t.Errorf("estate type must be sent as uint8 3, got %v", call.args[2])
	}

	if len(f.journal.records) != 1 || f.journal.records[0].Action != models.TxActionCreateEstate {
		t.Errorf("expected journaled create_estate, got %v", f.journal.records)
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0].Type != events.EventTransactionSubmitted {
		t.Errorf("expected transaction_submitted event")
	}
}

func TestEstateService_CreateAd_Failure(t *testing.T) {
	f := newFixture()
	f.contract.transactErr = errors.New("execution reverted: not owner")

	_, err := f.estates.CreateAd(ctx, seller, models.AdDraft{
		EstateID: big.NewInt(1), Price: big.NewInt(10), DateTime: big.NewInt(1700000000),
	})
	if err == nil || err.Error() != "execution reverted: not owner" {
		t.Fatalf("expected raw revert error, got %v", err)
	}
	if len(f.journal.records) != 0 {
		t.Error("failed transactions must not be journaled")
	}
}

func TestEstateService_UpdateEstateStatus(t *testing.T) {
	tests := []struct {
		token   string
		want    bool
		wantErr error
	}{
		{"true", true, nil},
		{"TRUE", true, nil},
		{"False", false, nil},
		{"maybe", false, models.ErrInvalidEstateStatus},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			f := newFixture()
			_, err := f.estates.UpdateEstateStatus(ctx, seller, big.NewInt(7), tt.token)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if len(f.contract.transacts) != 0 {
					t.Fatal("no transaction must be issued for an invalid token")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			call := f.contract.transacts[0]
			if call.method != chain.MethodUpdateEstateStatus || call.args[1].(bool) != tt.want {
				t.Errorf("unexpected call %+v", call)
			}
		})
	}
}

func TestEstateService_UpdateAdStatus(t *testing.T) {
	tests := []struct {
		token   string
		want    uint8
		wantErr bool
	}{
		{"opened", 0, false},
		{"Opened", 0, false},
		{"closed", 1, false},
		{"open", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			f := newFixture()
			_, err := f.estates.UpdateAdStatus(ctx, seller, big.NewInt(3), tt.token)
			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidAdStatus) {
					t.Fatalf("expected ErrInvalidAdStatus, got %v", err)
				}
				if len(f.contract.transacts) != 0 {
					t.Fatal("no transaction must be issued for an invalid token")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := f.contract.transacts[0].args[1].(uint8); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstateService_GetEstate(t *testing.T) {
	f := newFixture()
	f.contract.results[chain.MethodEstates] = []any{
		"Villa", "Main st. 1", uint8(1), big.NewInt(4), "sea view", seller, true,
	}

	e, err := f.estates.GetEstate(ctx, big.NewInt(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Name != "Villa" || e.Type != models.EstateTypeApartments || e.Rooms.Int64() != 4 || e.Owner != seller || !e.IsActive {
		t.Errorf("unexpected estate %+v", e)
	}
	if e.ID.Int64() != 5 {
		t.Errorf("id = %s", e.ID)
	}
}

func TestEstateService_GetEstate_Malformed(t *testing.T) {
	f := newFixture()
	f.contract.results[chain.MethodEstates] = []any{"only", "three", "values"}
	if _, err := f.estates.GetEstate(ctx, big.NewInt(1)); err == nil {
		t.Fatal("expected error for short output")
	}

	f.contract.results[chain.MethodEstates] = []any{1, "a", uint8(0), big.NewInt(1), "d", seller, true}
	if _, err := f.estates.GetEstate(ctx, big.NewInt(1)); err == nil {
		t.Fatal("expected error for mistyped output")
	}
}

func TestEstateService_GetAd(t *testing.T) {
	f := newFixture()
	f.contract.results[chain.MethodAds] = []any{seller, big.NewInt(2), big.NewInt(15), big.NewInt(1700000000), uint8(1)}

	ad, err := f.estates.GetAd(ctx, big.NewInt(9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ad.Price.Int64() != 15 || ad.Status != models.AdStatusClosed || ad.EstateID.Int64() != 2 {
		t.Errorf("unexpected ad %+v", ad)
	}

	f.contract.callErr = errNode
	if _, err := f.estates.GetAd(ctx, big.NewInt(9)); !errors.Is(err, errNode) {
		t.Fatalf("expected node error, got %v", err)
	}
}

func TestPaymentService_PurchaseEstate(t *testing.T) {
	tests := []struct {
		name       string
		price      int64
		balanceWei *big.Int
		wantErr    error
	}{
		{"balance above price", 2, chain.ToWei(big.NewInt(3), 18), nil},
		{"balance equals price", 2, chain.ToWei(big.NewInt(2), 18), nil},
		{"balance one wei short", 2, new(big.Int).Sub(chain.ToWei(big.NewInt(2), 18), big.NewInt(1)), ErrInsufficientFunds},
		{"zero balance", 1, big.NewInt(0), ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.contract.results[chain.MethodAds] = adOutput(tt.price)
			f.accounts.balance = tt.balanceWei

			hash, err := f.payments.PurchaseEstate(ctx, buyer, big.NewInt(1))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if len(f.contract.transacts) != 0 {
					t.Fatal("no purchase must be submitted with insufficient funds")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if hash != txHash {
				t.Errorf("hash = %s", hash.Hex())
			}

			call := f.contract.transacts[0]
			wantValue := chain.ToWei(big.NewInt(tt.price), 18)
			if call.method != chain.MethodPurchaseEstate || call.value.Cmp(wantValue) != 0 || call.from != buyer {
				t.Errorf("unexpected purchase call %+v", call)
			}
			if f.journal.records[0].ValueWei != wantValue.String() {
				t.Errorf("journaled value = %s, want %s", f.journal.records[0].ValueWei, wantValue)
			}
		})
	}
}

func TestPaymentService_PurchaseEstate_CollaboratorErrors(t *testing.T) {
	f := newFixture()
	f.contract.callErr = errNode
	if _, err := f.payments.PurchaseEstate(ctx, buyer, big.NewInt(1)); !errors.Is(err, errNode) {
		t.Fatalf("expected ad read error, got %v", err)
	}

	f = newFixture()
	f.contract.results[chain.MethodAds] = adOutput(1)
	f.accounts.balanceErr = errNode
	if _, err := f.payments.PurchaseEstate(ctx, buyer, big.NewInt(1)); !errors.Is(err, errNode) {
		t.Fatalf("expected balance error, got %v", err)
	}
	if len(f.contract.transacts) != 0 {
		t.Fatal("no purchase must be submitted when the balance read fails")
	}
}

func TestPaymentService_WithdrawFunds(t *testing.T) {
	t.Run("zero balance", func(t *testing.T) {
		f := newFixture()
		f.contract.results[chain.MethodGetBalance] = []any{big.NewInt(0)}

		_, err := f.payments.WithdrawFunds(ctx, seller)
		if !errors.Is(err, ErrNoFunds) {
			t.Fatalf("expected ErrNoFunds, got %v", err)
		}
		if len(f.contract.transacts) != 0 {
			t.Fatal("no withdrawal must be submitted for zero balance")
		}
	})

	t.Run("positive balance", func(t *testing.T) {
		f := newFixture()
		balance := chain.ToWei(big.NewInt(5), 18)
		f.contract.results[chain.MethodGetBalance] = []any{balance}

		if _, err := f.payments.WithdrawFunds(ctx, seller); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.contract.callFrom[0] != seller {
			t.Error("balance read must be scoped to the caller")
		}
		call := f.contract.transacts[0]
		if call.method != chain.MethodWithdraw || call.args[0].(*big.Int).Cmp(balance) != 0 {
			t.Errorf("withdrawal must be for exactly the balance, got %+v", call)
		}
		if call.value != nil {
			t.Error("withdrawal must not carry value")
		}
	})

	t.Run("read failure", func(t *testing.T) {
		f := newFixture()
		f.contract.callErr = errNode
		if _, err := f.payments.WithdrawFunds(ctx, seller); !errors.Is(err, errNode) {
			t.Fatalf("expected node error, got %v", err)
		}
	})
}

func TestPaymentService_ContractBalance_Malformed(t *testing.T) {
	f := newFixture()
	f.contract.results[chain.MethodGetBalance] = []any{"oops"}
	if _, err := f.payments.ContractBalance(ctx, seller); err == nil {
		t.Fatal("expected error for mistyped output")
	}
}

func TestTxService_History(t *testing.T) {
	disabled := NewTxService(nil, nil, nopLog)
	if _, err := disabled.History(ctx, buyer); !errors.Is(err, ErrJournalDisabled) {
		t.Fatalf("expected ErrJournalDisabled, got %v", err)
	}
	// Record must not panic without a journal or publisher.
	disabled.Record(ctx, buyer, models.TxActionWithdrawFunds, txHash, nil)

	journal := &fakeJournal{}
	s := NewTxService(journal, nil, nopLog)
	s.Record(ctx, buyer, models.TxActionPurchaseEstate, txHash, big.NewInt(10))
	s.Record(ctx, seller, models.TxActionCreateAd, common.HexToHash("0xbeef"), nil)

	history, err := s.History(ctx, buyer)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Hash != txHash.Hex() || history[0].Status != models.TxStatusPending {
		t.Errorf("unexpected history %v", history)
	}
}

func TestTxService_JournalFailureIsNotFatal(t *testing.T) {
	publisher := &fakePublisher{}
	s := NewTxService(&fakeJournal{createErr: errors.New("db down")}, publisher, nopLog)
	s.Record(ctx, buyer, models.TxActionCreateEstate, txHash, nil)
	if len(publisher.events) != 1 {
		t.Error("event must still be published when journaling fails")
	}
}
