package codec

import (
	"dex-slippage/internal/types"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
)

// DecodedWord is one word of a result read according to its WordSpec.
type DecodedWord struct {
	Role   string
	Signed bool
	Value  *big.Int
}

// Words are decoded words in layout order.
type Words []DecodedWord

// Get returns the value of role.
func (ws Words) Get(role string) (*big.Int, error) {
	for _, w := range ws {
		if w.Role == role {
			return w.Value, nil
		}
	}
	return nil, errors.Wrapf(types.ErrInvalidArgument, "no word for role %q", role)
}

// Values returns the values of roles in order, failing on the first missing role.
func (ws Words) Values(roles ...string) ([]*big.Int, error) {
	values := make([]*big.Int, 0, len(roles))
	for _, role := range roles {
		v, err := ws.Get(role)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Decode splits resultHex into the words declared by layout.
// The result is checked in full before any word is sliced out.
func Decode(resultHex string, layout Layout) (Words, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(resultHex, "0x") {
		return nil, errors.Wrapf(types.ErrMalformedResponse, "result %q has no 0x prefix", abbrev(resultHex))
	}
	body := len(resultHex) - 2
	if body%WordHexLen != 0 {
		return nil, errors.Wrapf(types.ErrMalformedResponse, "result length %d is not a multiple of %d", body, WordHexLen)
	}
	if len(resultHex) != layout.HexLen() {
		return nil, errors.Wrapf(types.ErrMalformedResponse, "layout %s expects %d words, got %d", layout.Name, len(layout.Words), body/WordHexLen)
	}
	raw, err := hexutil.Decode(resultHex)
	if err != nil {
		return nil, errors.Wrapf(types.ErrMalformedResponse, "result %q: %v", abbrev(resultHex), err)
	}

	words := make(Words, 0, len(layout.Words))
	for i, spec := range layout.Words {
		v, err := DecodeWord(raw[i*32:(i+1)*32], spec)
		if err != nil {
			return nil, errors.WithMessagef(err, "layout %s word %d (%s)", layout.Name, i, spec.Role)
		}
		words = append(words, DecodedWord{Role: spec.Role, Signed: spec.Signed, Value: v})
	}
	return words, nil
}

// DecodeWord reads a big-endian word. Signed words are two's complement over the declared width.
func DecodeWord(word []byte, spec WordSpec) (*big.Int, error) {
	bits := spec.width() * 8
	v := new(big.Int).SetBytes(word)
	if v.BitLen() > bits {
		return nil, errors.Wrapf(types.ErrArithmetic, "word 0x%x is wider than %d bytes", word, spec.width())
	}
	if spec.Signed && v.Bit(bits-1) == 1 {
		v.Sub(v, math.BigPow(2, int64(bits)))
	}
	return v, nil
}

func abbrev(s string) string {
	if len(s) > 20 {
		return s[:20] + "..."
	}
	return s
}
