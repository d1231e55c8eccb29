package biz

import (
	"context"
	"dex-slippage/internal/codec"
	"dex-slippage/internal/conf"
	"dex-slippage/internal/types"
	"dex-slippage/internal/utils"
	"fmt"
	"math/big"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Entry points of the slippage requester.
const (
	SelectorPricedPair = "0x3087bfd8"
	SelectorSwapAmount = "0xdba9f93c"
)

// Caller executes one eth_call and returns the raw result hex.
type Caller interface {
	EthCall(ctx context.Context, req *types.Request) (string, error)
}

// CallerDialer returns the caller for a node url.
type CallerDialer interface {
	Dial(rpcURL string) (Caller, error)
}

// PairQuote is the priced-pair reading of a pool.
type PairQuote struct {
	Pair                string
	Expected            decimal.Decimal
	Actual              decimal.Decimal
	Slippage            decimal.Decimal
	SlipPercent         decimal.Decimal
	ContractSlippage    *big.Int
	TokenAPriceDecimals int32
	TokenBPriceDecimals int32
}

// SwapQuote is the amount the pool would swap.
type SwapQuote struct {
	Pair   string
	Raw    *big.Int
	Amount decimal.Decimal
}

// SignedQuote is the reading of the signed-slippage entry point.
type SignedQuote struct {
	Pair             string
	SlippagePercent  decimal.Decimal
	ContractSlippage decimal.Decimal
	Expected         decimal.Decimal
	Actual           decimal.Decimal
	Slippage         decimal.Decimal
	SlipPercent      decimal.Decimal
}

// Outcome is the result of one query; exactly one of the quotes is set when Err is nil.
type Outcome struct {
	Query  *conf.Query
	Pair   *PairQuote
	Swap   *SwapQuote
	Signed *SignedQuote
	Err    error
}

// SlippageUsecase quotes pairs against slippage requester contracts.
type SlippageUsecase struct {
	dialer CallerDialer
	log    *log.Helper
}

// NewSlippageUsecase new a Slippage usecase.
func NewSlippageUsecase(dialer CallerDialer, logger log.Logger) *SlippageUsecase {
	return &SlippageUsecase{dialer: dialer, log: log.NewHelper(logger)}
}

// PricedPair reads both oracle prices and derives the slippage between them.
func (uc *SlippageUsecase) PricedPair(ctx context.Context, q *conf.Query) (*PairQuote, error) {
	words, err := uc.call(ctx, q, codec.PricedPair, SelectorPricedPair)
	if err != nil {
		return nil, err
	}
	values, err := words.Values(codec.RoleTokenAPrice, codec.RoleTokenBPrice, codec.RoleContractSlippage)
	if err != nil {
		return nil, errors.WithMessage(err, q.Pair)
	}
	aRaw, bRaw, contractSlippage := values[0], values[1], values[2]

	var aDec, bDec int32
	if q.PriceDecimals != nil {
		aDec, bDec = *q.PriceDecimals, *q.PriceDecimals
	} else {
		if aDec, err = decimalsOf(words, codec.RoleTokenAPriceDecimals); err != nil {
			return nil, err
		}
		if bDec, err = decimalsOf(words, codec.RoleTokenBPriceDecimals); err != nil {
			return nil, err
		}
	}

	quote := &PairQuote{
		Pair:                q.Pair,
		Expected:            codec.ScalePrice(aRaw, aDec, q.ADecimals),
		Actual:              codec.ScalePrice(bRaw, bDec, q.BDecimals),
		ContractSlippage:    contractSlippage,
		TokenAPriceDecimals: aDec,
		TokenBPriceDecimals: bDec,
	}
	quote.Slippage, quote.SlipPercent, err = codec.Slippage(quote.Expected, quote.Actual)
	if err != nil {
		return nil, errors.WithMessage(err, q.Pair)
	}
	return quote, nil
}

// SwapAmount reads the amount of token B the pool returns for the query amount.
func (uc *SlippageUsecase) SwapAmount(ctx context.Context, q *conf.Query) (*SwapQuote, error) {
	words, err := uc.call(ctx, q, codec.SwapAmount, SelectorSwapAmount)
	if err != nil {
		return nil, err
	}
	raw, err := words.Get(codec.RoleSwapAmount)
	if err != nil {
		return nil, errors.WithMessage(err, q.Pair)
	}
	return &SwapQuote{
		Pair:   q.Pair,
		Raw:    raw,
		Amount: codec.ScaleWord(raw, q.BDecimals),
	}, nil
}

// SignedSlippage reads the signed slippage words, which come with fixed divisors.
func (uc *SlippageUsecase) SignedSlippage(ctx context.Context, q *conf.Query) (*SignedQuote, error) {
	if q.Function == "" {
		return nil, errors.Wrapf(types.ErrInvalidArgument, "%s: signed-slippage needs a function selector", q.Pair)
	}
	words, err := uc.call(ctx, q, codec.SignedSlippage, "")
	if err != nil {
		return nil, err
	}
	values, err := words.Values(codec.RoleSlippagePercent, codec.RoleContractSlippage, codec.RoleTokenAPrice, codec.RoleTokenBPrice)
	if err != nil {
		return nil, errors.WithMessage(err, q.Pair)
	}
	pct, contractSlippage, aRaw, bRaw := values[0], values[1], values[2], values[3]

	quote := &SignedQuote{
		Pair:             q.Pair,
		SlippagePercent:  codec.ScaleWord(pct, codec.SignedPercentDecimals),
		ContractSlippage: codec.ScaleWord(contractSlippage, codec.SignedPercentDecimals),
		Expected:         codec.ScalePrice(aRaw, codec.FixedFeedDecimals, q.ADecimals),
		Actual:           codec.ScalePrice(bRaw, codec.FixedFeedDecimals, q.BDecimals),
	}
	quote.Slippage, quote.SlipPercent, err = codec.Slippage(quote.Expected, quote.Actual)
	if err != nil {
		return nil, errors.WithMessage(err, q.Pair)
	}
	return quote, nil
}

// Quote runs q with the entry point named by its layout, priced-pair by default.
func (uc *SlippageUsecase) Quote(ctx context.Context, q *conf.Query) *Outcome {
	out := &Outcome{Query: q}
	layout, ok := codec.LayoutByName(layoutName(q))
	if !ok {
		out.Err = errors.Wrapf(types.ErrInvalidArgument, "%s: unknown layout %q", q.Pair, q.Layout)
		return out
	}
	switch layout.Name {
	case codec.PricedPair.Name:
		out.Pair, out.Err = uc.PricedPair(ctx, q)
	case codec.SwapAmount.Name:
		out.Swap, out.Err = uc.SwapAmount(ctx, q)
	case codec.SignedSlippage.Name:
		out.Signed, out.Err = uc.SignedSlippage(ctx, q)
	default:
		out.Err = errors.Wrapf(types.ErrInvalidArgument, "%s: no entry point for layout %q", q.Pair, layout.Name)
	}
	return out
}

// RunAll quotes every query in order. A failed query is recorded in its outcome and the rest still run.
func (uc *SlippageUsecase) RunAll(ctx context.Context, queries []*conf.Query) []*Outcome {
	outcomes := make([]*Outcome, 0, len(queries))
	for _, q := range queries {
		out := uc.Quote(ctx, q)
		if out.Err != nil {
			uc.log.WithContext(ctx).Warnw(log.DefaultMessageKey, "query failed",
				"pair", q.Pair, "layout", layoutName(q), "kind", types.ErrorKind(out.Err), "error", out.Err.Error())
		} else {
			uc.log.WithContext(ctx).Infow(log.DefaultMessageKey, "query done", "pair", q.Pair, "layout", layoutName(q))
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

func (uc *SlippageUsecase) call(ctx context.Context, q *conf.Query, layout codec.Layout, defaultSelector string) (codec.Words, error) {
	params, err := callParams(q, defaultSelector)
	if err != nil {
		return nil, err
	}
	req, err := codec.NewCallRequest(params)
	if err != nil {
		return nil, errors.WithMessage(err, q.Pair)
	}
	caller, err := uc.dialer.Dial(q.RpcURL)
	if err != nil {
		return nil, errors.WithMessage(err, q.Pair)
	}
	if body, err := utils.JsonEncode(req); err == nil {
		uc.log.WithContext(ctx).Debugf("eth_call %s %s", q.Pair, body)
	}

	result, err := caller.EthCall(ctx, req)
	if err != nil {
		return nil, errors.WithMessage(err, q.Pair)
	}
	words, err := codec.Decode(result, layout)
	if err != nil {
		return nil, errors.WithMessage(err, q.Pair)
	}
	return words, nil
}

func callParams(q *conf.Query, defaultSelector string) (codec.CallParams, error) {
	amount, err := parseAmount(q.Amount)
	if err != nil {
		return codec.CallParams{}, errors.WithMessage(err, q.Pair)
	}
	selector := q.Function
	if selector == "" {
		selector = defaultSelector
	}
	kind := q.Kind
	if kind == "" {
		kind = codec.KindGivenIn
	}
	return codec.CallParams{
		Contract: q.Contract,
		Selector: selector,
		PoolID:   q.PoolID,
		Kind:     kind,
		TokenA:   q.TokenA,
		TokenB:   q.TokenB,
		Amount:   amount,
		Sender:   q.Sender,
		FeedA:    q.FeedA,
		FeedB:    q.FeedB,
	}, nil
}

// parseAmount accepts a decimal string, with optional _ separators, or 0x hex.
func parseAmount(s string) (*big.Int, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := utils.HexStringToInt(s)
		if err != nil {
			return nil, errors.Wrapf(types.ErrInvalidArgument, "amount %q", s)
		}
		return v, nil
	}
	v, ok := new(big.Int).SetString(strings.ReplaceAll(s, "_", ""), 10)
	if !ok {
		return nil, errors.Wrapf(types.ErrInvalidArgument, "amount %q", s)
	}
	return v, nil
}

func decimalsOf(words codec.Words, role string) (int32, error) {
	v, err := words.Get(role)
	if err != nil {
		return 0, err
	}
	return codec.DecimalsFromWord(v)
}

func layoutName(q *conf.Query) string {
	if q.Layout == "" {
		return codec.PricedPair.Name
	}
	return q.Layout
}

// Summary renders the outcome for a terminal.
func (o *Outcome) Summary() string {
	var sb strings.Builder
	sb.WriteString(o.Query.Pair)
	sb.WriteString("\n")
	switch {
	case o.Err != nil:
		fmt.Fprintf(&sb, " Error(%s):\t %v\n", types.ErrorKind(o.Err), o.Err)
	case o.Pair != nil:
		writeSlippage(&sb, o.Pair.Expected, o.Pair.Actual, o.Pair.Slippage, o.Pair.SlipPercent)
	case o.Swap != nil:
		fmt.Fprintf(&sb, " SwapAmount:\t %s (raw %s)\n", utils.BigIntString(o.Swap.Raw, int(o.Query.BDecimals)), o.Swap.Raw.String())
	case o.Signed != nil:
		writeSlippage(&sb, o.Signed.Expected, o.Signed.Actual, o.Signed.Slippage, o.Signed.SlipPercent)
		fmt.Fprintf(&sb, " Contract(%%):\t %s%%\n", o.Signed.SlippagePercent.StringFixed(2))
	}
	return sb.String()
}

func writeSlippage(sb *strings.Builder, expected, actual, slippage, percent decimal.Decimal) {
	fmt.Fprintf(sb, " Expected($):\t %s\n", expected.String())
	fmt.Fprintf(sb, " Actual  ($):\t %s\n", actual.String())
	fmt.Fprintf(sb, " Slippage($):\t %s\n", slippage.String())
	fmt.Fprintf(sb, " Slippage(%%):\t %s%%\n", percent.StringFixed(2))
}
