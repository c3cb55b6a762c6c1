package encoding

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/arloliu/colblock/format"
)

const (
	// DecimalWidth is the serialized size of a decimal: 4 flag bytes and a 96-bit magnitude.
	DecimalWidth = 16

	// MaxDecimalScale is the largest number of fractional digits a serialized decimal keeps.
	MaxDecimalScale = 28

	decimalMantissaBits = 96
	decimalScaleShift   = 16
	decimalSignMask     = 0x8000_0000
)

var maxDecimalMantissa = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), decimalMantissaBits), big.NewInt(1))

// DecimalCodec encodes decimals in a fixed 16-byte layout:
//
//	bytes 0..4   flags (u32 LE): scale in bits 16..23, sign in bit 31
//	bytes 4..16  magnitude, 96-bit unsigned little-endian integer
//
// Values that do not fit are first rounded to fewer fractional digits (at most
// MaxDecimalScale) and, if the integer part alone exceeds 96 bits, saturated to
// the largest representable magnitude. The scale is part of the encoding, so
// 1.0 and 1.00 serialize differently and start separate runs.
type DecimalCodec struct{}

// Decimal is the codec for TypeDecimal.
var Decimal TypeCodec[decimal.Decimal] = DecimalCodec{}

func (DecimalCodec) Type() format.LogicalType { return format.TypeDecimal }
func (DecimalCodec) Width() int { return DecimalWidth }
func (DecimalCodec) Len(decimal.Decimal) int { return DecimalWidth }
func (DecimalCodec) Borrowed(decimal.Decimal) ([]byte, bool) { return nil, false }

func (DecimalCodec) AppendOwned(dst []byte, v decimal.Decimal) []byte {
	mantissa, scale := fitDecimal(v)

	flags := uint32(scale) << decimalScaleShift //nolint:gosec
	if mantissa.Sign() < 0 {
		flags |= decimalSignMask
	}
	dst = le.AppendUint32(dst, flags)

	var be [12]byte
	new(big.Int).Abs(mantissa).FillBytes(be[:])
	for i := len(be) - 1; i >= 0; i-- {
		dst = append(dst, be[i])
	}

	return dst
}

func (DecimalCodec) FromBytes(b []byte) decimal.Decimal {
	flags := le.Uint32(b[0:4])
	scale := int32((flags >> decimalScaleShift) & 0xFF) //nolint:gosec

	var be [12]byte
	for i := range be {
		be[i] = b[DecimalWidth-1-i]
	}
	mantissa := new(big.Int).SetBytes(be[:])
	if flags&decimalSignMask != 0 {
		mantissa.Neg(mantissa)
	}

	return decimal.NewFromBigInt(mantissa, -scale)
}

// fitDecimal returns the signed mantissa and scale used to serialize v.
func fitDecimal(v decimal.Decimal) (*big.Int, int) {
	if exp := v.Exponent(); exp > 0 {
		// Positive exponents are folded into the mantissa with scale 0.
		m := v.Coefficient()
		m.Mul(m, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil))
		v = decimal.NewFromBigInt(m, 0)
	}

	// Each attempt rounds from the exact value to avoid double rounding.
	exact := v
	if -v.Exponent() > MaxDecimalScale {
		v = exact.Round(MaxDecimalScale)
	}

	scale := -v.Exponent()
	mantissa := v.Coefficient()
	for mantissa.CmpAbs(maxDecimalMantissa) > 0 && scale > 0 {
		v = exact.Round(scale - 1)
		scale = -v.Exponent()
		mantissa = v.Coefficient()
	}

	if mantissa.CmpAbs(maxDecimalMantissa) > 0 {
		saturated := new(big.Int).Set(maxDecimalMantissa)
		if mantissa.Sign() < 0 {
			saturated.Neg(saturated)
		}

		return saturated, 0
	}

	return mantissa, int(scale)
}
