package pgtype

import (
	"fmt"
	"math/big"

	"github.com/jeroenrinzema/pgfrontend/internal/buffer"
	"github.com/shopspring/decimal"
)

// Numeric sign values as carried in the wire header.
const (
	numericPositive uint16 = 0x0000
	numericNegative uint16 = 0x4000
	numericNaN      uint16 = 0xC000
)

var ten4 = big.NewInt(10000)

// DecodeNumeric decodes PostgreSQL's variable-length binary numeric format
// (ndigits, weight, sign, dscale, then ndigits base-10000 digit groups)
// into a decimal.Decimal. Each digit group represents four decimal digits;
// the value is exact, decimal.Decimal's arbitrary-precision coefficient
// requires no rounding to hold it.
func DecodeNumeric(body []byte) (decimal.Decimal, error) {
	r := buffer.NewReader(body)

	ndigits, err := r.GetUint16()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("pgtype: truncated numeric header: %w", err)
	}
	weight, err := r.GetInt16()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("pgtype: truncated numeric header: %w", err)
	}
	sign, err := r.GetUint16()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("pgtype: truncated numeric header: %w", err)
	}
	_, err = r.GetUint16() // dscale: display precision, not needed to reconstruct the exact value
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("pgtype: truncated numeric header: %w", err)
	}

	if sign == numericNaN {
		return decimal.Decimal{}, fmt.Errorf("pgtype: numeric NaN has no decimal.Decimal representation")
	}
	if sign != numericPositive && sign != numericNegative {
		return decimal.Decimal{}, fmt.Errorf("pgtype: unknown numeric sign 0x%04x", sign)
	}

	acc := new(big.Int)
	for i := 0; i < int(ndigits); i++ {
		d, err := r.GetUint16()
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("pgtype: truncated numeric digit group: %w", err)
		}
		if d > 9999 {
			return decimal.Decimal{}, fmt.Errorf("pgtype: numeric digit group %d out of range", d)
		}

		acc.Mul(acc, ten4)
		acc.Add(acc, big.NewInt(int64(d)))
	}

	if sign == numericNegative {
		acc.Neg(acc)
	}

	exp := int32(4) * (int32(weight) - int32(ndigits) + 1)
	return decimal.NewFromBigInt(acc, exp), nil
}

// EncodeNumeric encodes a decimal.Decimal into PostgreSQL's binary numeric
// format. dscale is the display scale to report in the header; it does not
// affect the encoded value, which is always exact.
func EncodeNumeric(v decimal.Decimal, dscale uint16) []byte {
	coeff := new(big.Int).Set(v.Coefficient())
	exp := v.Exponent()

	negative := coeff.Sign() < 0
	if negative {
		coeff.Neg(coeff)
	}

	// Pad the coefficient so its exponent becomes a multiple of 4: each
	// numeric digit group is worth 10000 = 10^4.
	if rem := ((exp % 4) + 4) % 4; rem != 0 {
		coeff.Mul(coeff, pow10(int(rem)))
		exp -= rem
	}

	groups := decomposeBase10000(coeff)
	ndigits := len(groups)
	weight := int32(0)
	if ndigits > 0 {
		weight = exp/4 + int32(ndigits) - 1
	}

	out := make([]byte, 0, 8+2*ndigits)
	out = append(out, u16(uint16(ndigits))...)
	out = append(out, u16(uint16(int16(weight)))...)
	sign := numericPositive
	if negative {
		sign = numericNegative
	}
	out = append(out, u16(sign)...)
	out = append(out, u16(dscale)...)
	for _, g := range groups {
		out = append(out, u16(g)...)
	}

	return out
}

func u16(v uint16) []byte {
	return []byte{byte(v >> 8), byte(v)}
}

// decomposeBase10000 splits coeff into base-10000 digit groups, most
// significant first, trimming leading all-zero groups.
func decomposeBase10000(coeff *big.Int) []uint16 {
	if coeff.Sign() == 0 {
		return nil
	}

	var rev []uint16
	remaining := new(big.Int).Set(coeff)
	mod := new(big.Int)
	for remaining.Sign() > 0 {
		remaining.DivMod(remaining, ten4, mod)
		rev = append(rev, uint16(mod.Int64()))
	}

	groups := make([]uint16, len(rev))
	for i, g := range rev {
		groups[len(rev)-1-i] = g
	}
	return groups
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
