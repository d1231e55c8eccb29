package codec

import (
	"dex-slippage/internal/types"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func word(v *big.Int) string {
	return fmt.Sprintf("%064x", v)
}

func result(words ...string) string {
	return "0x" + strings.Join(words, "")
}

func TestDecodeWordTwosComplement(t *testing.T) {
	ones := make([]byte, 32)
	for i := range ones {
		ones[i] = 0xff
	}
	zero := make([]byte, 32)

	v, err := DecodeWord(ones, WordSpec{Signed: true})
	assert.NoError(t, err)
	assert.Equal(t, int64(-1), v.Int64())

	v, err = DecodeWord(zero, WordSpec{Signed: true})
	assert.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	v, err = DecodeWord(zero, WordSpec{})
	assert.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	v, err = DecodeWord(ones, WordSpec{})
	assert.NoError(t, err)
	assert.Equal(t, 256, v.BitLen())
}

func TestDecodeWordNarrowWidth(t *testing.T) {
	w := make([]byte, 32)
	w[31] = 0xfe
	v, err := DecodeWord(w, WordSpec{Signed: true, ByteWidth: 1})
	assert.NoError(t, err)
	assert.Equal(t, int64(-2), v.Int64())

	v, err = DecodeWord(w, WordSpec{ByteWidth: 1})
	assert.NoError(t, err)
	assert.Equal(t, int64(254), v.Int64())

	w[30] = 0x01
	_, err = DecodeWord(w, WordSpec{Signed: true, ByteWidth: 1})
	assert.True(t, errors.Is(err, types.ErrArithmetic))
}

func TestDecodePricedPair(t *testing.T) {
	hex := result(
		word(big.NewInt(2_000_000_000_000)),
		word(big.NewInt(1_800_000)),
		word(big.NewInt(7)),
		word(big.NewInt(8)),
		word(big.NewInt(8)),
	)
	words, err := Decode(hex, PricedPair)
	require.NoError(t, err)
	require.Len(t, words, 5)

	for i, w := range words {
		assert.Equal(t, PricedPair.Words[i].Role, w.Role)
	}
	price, err := words.Get(RoleTokenAPrice)
	assert.NoError(t, err)
	assert.Equal(t, int64(2_000_000_000_000), price.Int64())

	dec, err := words.Get(RoleTokenBPriceDecimals)
	assert.NoError(t, err)
	assert.Equal(t, int64(8), dec.Int64())

	_, err = words.Get(RoleSwapAmount)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))

	values, err := words.Values(RoleTokenAPrice, RoleContractSlippage)
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, int64(2_000_000_000_000), values[0].Int64())
	assert.Equal(t, int64(7), values[1].Int64())

	values, err = words.Values(RoleTokenAPrice, RoleSwapAmount)
	assert.Nil(t, values)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}

func TestDecodeSignedSlippage(t *testing.T) {
	minusOne := strings.Repeat("f", 64)
	hex := result(minusOne, word(big.NewInt(0)), word(big.NewInt(100)), word(big.NewInt(99)))
	words, err := Decode(hex, SignedSlippage)
	require.NoError(t, err)

	pct, err := words.Get(RoleSlippagePercent)
	assert.NoError(t, err)
	assert.Equal(t, int64(-1), pct.Int64())

	slip, err := words.Get(RoleContractSlippage)
	assert.NoError(t, err)
	assert.Equal(t, 0, slip.Sign())

	price, err := words.Get(RoleTokenAPrice)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), price.Int64())
}

func TestDecodeSwapAmount(t *testing.T) {
	words, err := Decode(result(word(big.NewInt(1_000_000_000))), SwapAmount)
	require.NoError(t, err)
	v, err := words.Get(RoleSwapAmount)
	assert.NoError(t, err)
	assert.Equal(t, "1000000000", v.String())
}

func TestDecodeMalformed(t *testing.T) {
	one := word(big.NewInt(1))
	tests := []struct {
		name   string
		hex    string
		layout Layout
	}{
		{"no prefix", one, SwapAmount},
		{"empty", "", SwapAmount},
		{"bare prefix", "0x", SwapAmount},
		{"not word aligned", "0x" + one + "00", SwapAmount},
		{"too short", result(one, one), PricedPair},
		{"too long", result(one, one), SwapAmount},
		{"odd length", "0x" + one[:63], SwapAmount},
		{"not hex", "0x" + strings.Repeat("g", 64), SwapAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := Decode(tt.hex, tt.layout)
			assert.Nil(t, words)
			assert.True(t, errors.Is(err, types.ErrMalformedResponse), "%v", err)
		})
	}
}

func TestLayoutValidate(t *testing.T) {
	for _, name := range []string{"priced-pair", "swap-amount", "signed-slippage"} {
		l, ok := LayoutByName(name)
		require.True(t, ok, name)
		assert.NoError(t, l.Validate(), name)
	}
	_, ok := LayoutByName("unknown")
	assert.False(t, ok)

	assert.Equal(t, 2+64*5, PricedPair.HexLen())

	bad := []Layout{
		{Name: "empty"},
		{Name: "dup", Words: []WordSpec{{Role: "a"}, {Role: "a"}}},
		{Name: "wide", Words: []WordSpec{{Role: "a", ByteWidth: 33}}},
	}
	for _, l := range bad {
		_, err := Decode(result(word(big.NewInt(1))), l)
		assert.True(t, errors.Is(err, types.ErrInvalidArgument), l.Name)
	}
}
