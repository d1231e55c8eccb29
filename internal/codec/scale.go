package codec

import (
	"dex-slippage/internal/types"
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Fixed divisors of the signed-slippage entry point, which returns no decimals words.
const (
	SignedPercentDecimals = 6
	FixedFeedDecimals     = 8
)

// maxDecimals bounds a decimals word; ERC20 and oracle decimals are uint8.
const maxDecimals = 255

var hundred = decimal.NewFromInt(100)

// ScaleWord returns raw / 10^decimals.
func ScaleWord(raw *big.Int, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(raw, -decimals)
}

// DecimalsFromWord converts a decimals word into an exponent.
func DecimalsFromWord(v *big.Int) (int32, error) {
	if v.Sign() < 0 || !v.IsInt64() || v.Int64() > maxDecimals {
		return 0, errors.Wrapf(types.ErrArithmetic, "decimals word %s out of range", v)
	}
	return int32(v.Int64()), nil
}

// ScalePrice returns priceRaw / 10^(priceDecimals + tokenDecimals).
func ScalePrice(priceRaw *big.Int, priceDecimals, tokenDecimals int32) decimal.Decimal {
	return ScaleWord(priceRaw, priceDecimals+tokenDecimals)
}

// Slippage returns expected - actual and that difference as a percentage of expected.
func Slippage(expected, actual decimal.Decimal) (slippage, percent decimal.Decimal, err error) {
	slippage = expected.Sub(actual)
	if expected.IsZero() {
		return slippage, decimal.Zero, errors.Wrap(types.ErrArithmetic, "division by zero: expected price is 0")
	}
	percent = slippage.Div(expected).Mul(hundred)
	return slippage, percent, nil
}
