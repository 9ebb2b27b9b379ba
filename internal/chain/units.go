package chain

import (
	"math/big"
	"strings"
)

// UnitScale returns 10^decimals.
func UnitScale(decimals int) *big.Int {
	if decimals <= 0 {
		return big.NewInt(1)
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}

// ToWei converts an amount in whole units to wei.
func ToWei(amount *big.Int, decimals int) *big.Int {
	return new(big.Int).Mul(amount, UnitScale(decimals))
}

// FormatUnits renders wei as a decimal amount of whole units without trailing zeros.
func FormatUnits(wei *big.Int, decimals int) string {
	if wei == nil {
		return "0"
	}
	if decimals <= 0 {
		return wei.String()
	}

	s := new(big.Rat).SetFrac(wei, UnitScale(decimals)).FloatString(decimals)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
