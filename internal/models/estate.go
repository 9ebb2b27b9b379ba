package models

import (
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// EstateType mirrors the contract enum.
type EstateType uint8

const (
	EstateTypeHouse EstateType = iota
	EstateTypeApartments
	EstateTypeFlat
	EstateTypeLoft
)

var estateTypeNames = []string{"House", "Apartments", "Flat", "Loft"}

func (t EstateType) String() string {
	if int(t) < len(estateTypeNames) {
		return estateTypeNames[t]
	}
	return "Unknown"
}

// AdStatus mirrors the contract enum.
type AdStatus uint8

const (
	AdStatusOpened AdStatus = iota
	AdStatusClosed
)

func (s AdStatus) String() string {
	switch s {
	case AdStatusOpened:
		return "Opened"
	case AdStatusClosed:
		return "Closed"
	}
	return "Unknown"
}

var (
	ErrInvalidEstateType   = errors.New("Неверный тип недвижимости. Допустимые значения: House, Apartments, Flat, Loft.")
	ErrInvalidEstateStatus = errors.New("Неверное значение. Введите true или false.")
	ErrInvalidAdStatus     = errors.New("Неверное значение. Введите Opened или Closed.")
)

func EstateTypeNames() []string {
	return estateTypeNames
}

func ParseEstateType(s string) (EstateType, error) {
	s = strings.TrimSpace(s)
	for i, name := range estateTypeNames {
		if strings.EqualFold(s, name) {
			return EstateType(i), nil
		}
	}
	return 0, ErrInvalidEstateType
}

// ParseEstateStatus accepts "true"/"false" in any case.
func ParseEstateStatus(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, ErrInvalidEstateStatus
}

// ParseAdStatus accepts "Opened"/"Closed" in any case.
func ParseAdStatus(s string) (AdStatus, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, AdStatusOpened.String()):
		return AdStatusOpened, nil
	case strings.EqualFold(s, AdStatusClosed.String()):
		return AdStatusClosed, nil
	}
	return 0, ErrInvalidAdStatus
}

type EstateDraft struct {
	Name        string
	Address     string
	Type        EstateType
	Rooms       *big.Int
	Description string
}

type AdDraft struct {
	EstateID *big.Int
	Price    *big.Int // в целых единицах, не в wei
	DateTime *big.Int
}

// Estate is a record read from the contract's estates getter.
type Estate struct {
	ID          *big.Int
	Name        string
	Address     string
	Type        EstateType
	Rooms       *big.Int
	Description string
	Owner       common.Address
	IsActive    bool
}

// Ad is a record read from the contract's ads getter.
type Ad struct {
	ID       *big.Int
	Owner    common.Address
	EstateID *big.Int
	Price    *big.Int
	DateTime *big.Int
	Status   AdStatus
}
