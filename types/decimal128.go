package types

import (
	"math/big"

	"github.com/chaisql/bsonmap/internal/encoding"
	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
)

// Layout of the IEEE 754-2008 decimal128 binary integer decimal encoding.
const (
	decimalExponentBias = 6176
	decimalMaxExponent  = 6111
	decimalMinExponent  = -6176
	decimalMaxDigits    = 34

	decimalSignBit = uint64(1) << 63
	decimalNaN     = uint64(0x1F) << 58
	decimalInf     = uint64(0x1E) << 58
	decimalHighMsk = uint64(1)<<49 - 1
)

var (
	decimalMaxCoeff = new(big.Int).Sub(new(big.Int).Exp(big.NewInt(10), big.NewInt(decimalMaxDigits), nil), big.NewInt(1))
	bigTen          = big.NewInt(10)
)

var _ Value = NewDecimal128Value(0, 0)

// Decimal128Value is a 128-bit decimal floating point number.
// High and Low are the two 64-bit words of its encoding.
type Decimal128Value struct {
	High uint64
	Low  uint64
}

func NewDecimal128Value(high, low uint64) Decimal128Value {
	return Decimal128Value{High: high, Low: low}
}

// ParseDecimal128 parses s and returns the matching 128-bit decimal.
// It returns ErrInvalidDecimal if s is not a number or if it cannot be
// represented without rounding.
func ParseDecimal128(s string) (Decimal128Value, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Decimal128Value{}, errors.Wrapf(ErrInvalidDecimal, "cannot parse %q", s)
	}

	return decimal128FromApd(d, s)
}

func decimal128FromApd(d *apd.Decimal, s string) (Decimal128Value, error) {
	var high uint64
	if d.Negative {
		high = decimalSignBit
	}

	switch d.Form {
	case apd.NaN, apd.NaNSignaling:
		return Decimal128Value{High: decimalNaN}, nil
	case apd.Infinite:
		return Decimal128Value{High: high | decimalInf}, nil
	}

	coeff := d.Coeff.MathBigInt()
	coeff.Abs(coeff)
	exp := int(d.Exponent)

	// bring the exponent within range without losing digits
	for exp > decimalMaxExponent && coeff.Sign() != 0 {
		next := new(big.Int).Mul(coeff, bigTen)
		if next.Cmp(decimalMaxCoeff) > 0 {
			break
		}
		coeff = next
		exp--
	}
	var rem big.Int
	for coeff.Cmp(decimalMaxCoeff) > 0 && exp < decimalMaxExponent {
		q, r := new(big.Int).QuoRem(coeff, bigTen, &rem)
		if r.Sign() != 0 {
			break
		}
		coeff = q
		exp++
	}
	for exp < decimalMinExponent && coeff.Sign() != 0 {
		q, r := new(big.Int).QuoRem(coeff, bigTen, &rem)
		if r.Sign() != 0 {
			break
		}
		coeff = q
		exp++
	}
	if coeff.Sign() == 0 {
		exp = min(max(exp, decimalMinExponent), decimalMaxExponent)
	}

	if exp > decimalMaxExponent || exp < decimalMinExponent || coeff.Cmp(decimalMaxCoeff) > 0 {
		return Decimal128Value{}, errors.Wrapf(ErrInvalidDecimal, "%q is out of range", s)
	}

	low := new(big.Int).And(coeff, new(big.Int).SetUint64(^uint64(0))).Uint64()
	hi := new(big.Int).Rsh(coeff, 64).Uint64()

	high |= uint64(exp+decimalExponentBias) << 49
	high |= hi & decimalHighMsk
	return Decimal128Value{High: high, Low: low}, nil
}

// Decimal returns v as an arbitrary precision decimal.
func (v Decimal128Value) Decimal() *apd.Decimal {
	negative := v.High&decimalSignBit != 0

	switch {
	case v.High&decimalNaN == decimalNaN:
		return &apd.Decimal{Form: apd.NaN}
	case v.High&decimalNaN == decimalInf:
		return &apd.Decimal{Form: apd.Infinite, Negative: negative}
	}

	var exp int
	coeff := new(big.Int)
	if (v.High>>61)&3 == 3 {
		// the coefficient of the second form always exceeds the maximum
		// and is treated as zero
		exp = int((v.High>>47)&(1<<14-1)) - decimalExponentBias
	} else {
		exp = int((v.High>>49)&(1<<14-1)) - decimalExponentBias
		coeff.SetUint64(v.High & decimalHighMsk)
		coeff.Lsh(coeff, 64)
		coeff.Or(coeff, new(big.Int).SetUint64(v.Low))
		if coeff.Cmp(decimalMaxCoeff) > 0 {
			coeff.SetInt64(0)
		}
	}

	d := apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(coeff), int32(exp))
	d.Negative = negative
	return d
}

// Text returns the decimal representation of v, e.g. "1.5", "-0", "1E+3" or "NaN".
func (v Decimal128Value) Text() string {
	return v.Decimal().String()
}

func (v Decimal128Value) V() any {
	return v
}

func (v Decimal128Value) Type() Type {
	return TypeDecimal128
}

func (v Decimal128Value) String() string {
	return stringOf(v)
}

func (v Decimal128Value) MarshalJSON() ([]byte, error) {
	return marshalWrapped("$numberDecimal", v.Text())
}

func (v Decimal128Value) appendPayload(dst []byte) []byte {
	return encoding.AppendDecimal128(dst, v.High, v.Low)
}
