package codec

import (
	"dex-slippage/internal/types"
	"dex-slippage/internal/utils"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// WordHexLen is the hex width of one 32-byte ABI word.
const WordHexLen = 64

// Swap kinds of the vault's SwapKind enum.
const (
	KindGivenIn  = "0x00"
	KindGivenOut = "0x01"
)

type argType int

const (
	argBytes32 argType = iota
	argUint
	argAddress
	argAmount
)

// Arg is one 32-byte calldata argument.
type Arg struct {
	typ    argType
	hex    string
	amount *big.Int
}

// Bytes32 is a raw 32-byte value such as a pool id.
func Bytes32(v string) Arg { return Arg{typ: argBytes32, hex: v} }

// Uint is a small unsigned integer given in hex, e.g. a swap kind.
func Uint(v string) Arg { return Arg{typ: argUint, hex: v} }

// Address is a 20-byte address left-padded to a word.
func Address(v string) Arg { return Arg{typ: argAddress, hex: v} }

// Amount is a non-negative integer of at most 256 bits.
func Amount(v *big.Int) Arg { return Arg{typ: argAmount, amount: v} }

// CallParams are the arguments of the slippage requester entry points.
type CallParams struct {
	Contract string
	Selector string
	PoolID   string
	Kind     string
	TokenA   string
	TokenB   string
	Amount   *big.Int
	Sender   string
	FeedA    string
	FeedB    string
}

// Args returns the calldata arguments in contract order.
func (p CallParams) Args() []Arg {
	return []Arg{
		Bytes32(p.PoolID),
		Uint(p.Kind),
		Address(p.TokenA),
		Address(p.TokenB),
		Amount(p.Amount),
		Address(p.Sender),
		Address(p.FeedA),
		Address(p.FeedB),
	}
}

// Encode concatenates the selector, kept verbatim, with every argument padded to one word.
func Encode(selector string, args ...Arg) (string, error) {
	if err := checkSelector(selector); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(len(selector) + WordHexLen*len(args))
	sb.WriteString(selector)
	for i, arg := range args {
		w, err := arg.word()
		if err != nil {
			return "", errors.WithMessagef(err, "argument %d", i)
		}
		sb.WriteString(w)
	}
	return sb.String(), nil
}

// EncodeCall encodes p into calldata.
func EncodeCall(p CallParams) (string, error) {
	return Encode(p.Selector, p.Args()...)
}

// NewCallRequest wraps the calldata of p into an eth_call envelope.
func NewCallRequest(p CallParams) (*types.Request, error) {
	if !common.IsHexAddress(p.Contract) {
		return nil, errors.Wrapf(types.ErrInvalidArgument, "contract address %q", p.Contract)
	}
	data, err := EncodeCall(p)
	if err != nil {
		return nil, err
	}
	return types.NewEthCall(p.Contract, data), nil
}

func (a Arg) word() (string, error) {
	switch a.typ {
	case argBytes32:
		payload, err := hexPayload(a.hex)
		if err != nil {
			return "", err
		}
		return leftPad(payload), nil
	case argUint:
		if _, err := hexPayload(a.hex); err != nil {
			return "", err
		}
		v, err := utils.HexStringToInt(a.hex)
		if err != nil {
			return "", errors.Wrapf(types.ErrInvalidArgument, "uint %q: %v", a.hex, err)
		}
		return fmt.Sprintf("%064x", v), nil
	case argAddress:
		if !common.IsHexAddress(a.hex) {
			return "", errors.Wrapf(types.ErrInvalidArgument, "address %q", a.hex)
		}
		return hex.EncodeToString(common.LeftPadBytes(common.HexToAddress(a.hex).Bytes(), 32)), nil
	case argAmount:
		if a.amount == nil || a.amount.Sign() < 0 {
			return "", errors.Wrapf(types.ErrInvalidArgument, "amount %v is not a non-negative integer", a.amount)
		}
		if a.amount.BitLen() > 256 {
			return "", errors.Wrapf(types.ErrInvalidArgument, "amount %s overflows 256 bits", a.amount)
		}
		return fmt.Sprintf("%064x", a.amount), nil
	}
	return "", errors.Wrapf(types.ErrInvalidArgument, "unknown argument type %d", a.typ)
}

// AddressFromWord recovers an address from a left-padded word.
func AddressFromWord(word string) (string, error) {
	word = utils.StripHexPrefix(word)
	if len(word) != WordHexLen || strings.Trim(word[:24], "0") != "" {
		return "", errors.Wrapf(types.ErrMalformedResponse, "word %q is not a padded address", word)
	}
	if !isHex(word[24:]) {
		return "", errors.Wrapf(types.ErrMalformedResponse, "word %q is not hex", word)
	}
	return "0x" + word[24:], nil
}

func checkSelector(selector string) error {
	if !strings.HasPrefix(selector, "0x") || len(selector) != 10 || !isHex(selector[2:]) {
		return errors.Wrapf(types.ErrInvalidArgument, "selector %q", selector)
	}
	return nil
}

// hexPayload strips the prefix and refuses anything that cannot be padded into one word.
func hexPayload(v string) (string, error) {
	payload := utils.StripHexPrefix(v)
	if len(payload) == 0 || len(payload) > WordHexLen {
		return "", errors.Wrapf(types.ErrInvalidArgument, "hex %q does not fit one word", v)
	}
	if !isHex(payload) {
		return "", errors.Wrapf(types.ErrInvalidArgument, "hex %q", v)
	}
	return strings.ToLower(payload), nil
}

func leftPad(payload string) string {
	return strings.Repeat("0", WordHexLen-len(payload)) + payload
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}
