package dto

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/estate-agency/frontend/internal/models"
	"github.com/ethereum/go-ethereum/common"
)

// Form bodies (application/x-www-form-urlencoded). Numbers stay strings
// so that a malformed value is reported on the page, not as a 400.

type LoginForm struct {
	PublicKey string `form:"public_key"`
	Password  string `form:"password"`
}

type RegisterForm struct {
	Password string `form:"password"`
}

type CreateEstateForm struct {
	Name       string `form:"name"`
	Address    string `form:"address"`
	EstateType string `form:"estate_type"`
	Rooms      string `form:"rooms"`
	Describe   string `form:"describe"`
}

func (f CreateEstateForm) Draft() (models.EstateDraft, error) {
	typ, err := models.ParseEstateType(f.EstateType)
	if err != nil {
		return models.EstateDraft{}, err
	}
	rooms, err := ParseUint("rooms", f.Rooms)
	if err != nil {
		return models.EstateDraft{}, err
	}
	return models.EstateDraft{
		Name:        f.Name,
		Address:     f.Address,
		Type:        typ,
		Rooms:       rooms,
		Description: f.Describe,
	}, nil
}

type CreateAdForm struct {
	EstateID string `form:"estate_id"`
	Price    string `form:"price"`
	DateTime string `form:"date_time"`
}

func (f CreateAdForm) Draft() (models.AdDraft, error) {
	estateID, err := ParseUint("estate_id", f.EstateID)
	if err != nil {
		return models.AdDraft{}, err
	}
	price, err := ParseUint("price", f.Price)
	if err != nil {
		return models.AdDraft{}, err
	}
	dateTime, err := ParseUint("date_time", f.DateTime)
	if err != nil {
		return models.AdDraft{}, err
	}
	return models.AdDraft{EstateID: estateID, Price: price, DateTime: dateTime}, nil
}

type UpdateEstateStatusForm struct {
	EstateID  string `form:"estate_id"`
	NewStatus string `form:"new_status"`
}

type UpdateAdStatusForm struct {
	AdID      string `form:"ad_id"`
	NewStatus string `form:"new_status"`
}

type EstateIDForm struct {
	EstateID string `form:"estate_id"`
}

type AdIDForm struct {
	AdID string `form:"ad_id"`
}

// ParseUint parses a base-10 unsigned integer of arbitrary size.
func ParseUint(field, s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid literal for %s: %q", field, s)
	}
	return v, nil
}

// ParseAccount accepts a 0x-prefixed or bare 40-digit hex address.
func ParseAccount(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid account address: %q", s)
	}
	return common.HexToAddress(s), nil
}
