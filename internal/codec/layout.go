package codec

import (
	"dex-slippage/internal/types"

	"github.com/pkg/errors"
)

// Word roles returned by the slippage requester.
const (
	RoleTokenAPrice         = "tokenAPrice"
	RoleTokenBPrice         = "tokenBPrice"
	RoleContractSlippage    = "contractSlippage"
	RoleTokenAPriceDecimals = "tokenAPriceDecimals"
	RoleTokenBPriceDecimals = "tokenBPriceDecimals"
	RoleSwapAmount          = "swapAmount"
	RoleSlippagePercent     = "slippagePercent"
)

// WordSpec declares how one returned word is read. ByteWidth 0 means a full word.
type WordSpec struct {
	Role      string
	Signed    bool
	ByteWidth int
}

func (s WordSpec) width() int {
	if s.ByteWidth == 0 {
		return 32
	}
	return s.ByteWidth
}

// Layout is the fixed, ordered word layout of one contract entry point.
type Layout struct {
	Name  string
	Words []WordSpec
}

var (
	PricedPair = Layout{
		Name: "priced-pair",
		Words: []WordSpec{
			{Role: RoleTokenAPrice},
			{Role: RoleTokenBPrice},
			{Role: RoleContractSlippage},
			{Role: RoleTokenAPriceDecimals},
			{Role: RoleTokenBPriceDecimals},
		},
	}

	SwapAmount = Layout{
		Name: "swap-amount",
		Words: []WordSpec{
			{Role: RoleSwapAmount},
		},
	}

	SignedSlippage = Layout{
		Name: "signed-slippage",
		Words: []WordSpec{
			{Role: RoleSlippagePercent, Signed: true},
			{Role: RoleContractSlippage, Signed: true},
			{Role: RoleTokenAPrice},
			{Role: RoleTokenBPrice},
		},
	}
)

var layouts = map[string]Layout{
	PricedPair.Name:     PricedPair,
	SwapAmount.Name:     SwapAmount,
	SignedSlippage.Name: SignedSlippage,
}

// LayoutByName looks up one of the known layouts.
func LayoutByName(name string) (Layout, bool) {
	l, ok := layouts[name]
	return l, ok
}

// Validate checks byte widths and that roles are unique.
func (l Layout) Validate() error {
	if len(l.Words) == 0 {
		return errors.Wrapf(types.ErrInvalidArgument, "layout %q has no words", l.Name)
	}
	seen := make(map[string]bool, len(l.Words))
	for i, w := range l.Words {
		if w.ByteWidth < 0 || w.ByteWidth > 32 {
			return errors.Wrapf(types.ErrInvalidArgument, "layout %q word %d: byte width %d", l.Name, i, w.ByteWidth)
		}
		if seen[w.Role] {
			return errors.Wrapf(types.ErrInvalidArgument, "layout %q: duplicated role %q", l.Name, w.Role)
		}
		seen[w.Role] = true
	}
	return nil
}

// HexLen is the length of a well-formed result for l, 0x prefix included.
func (l Layout) HexLen() int {
	return 2 + WordHexLen*len(l.Words)
}
