package types

import (
	"github.com/pkg/errors"
)

// Error kinds surfaced by a query. Producers wrap one of these, callers test with errors.Is.
var (
	ErrTransport         = errors.New("transport error")
	ErrRPC               = errors.New("rpc error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrArithmetic        = errors.New("arithmetic error")
	ErrInvalidArgument   = errors.New("invalid argument")
)

var errorKinds = []struct {
	kind error
	name string
}{
	{ErrTransport, "transport"},
	{ErrRPC, "rpc"},
	{ErrMalformedResponse, "malformed_response"},
	{ErrArithmetic, "arithmetic"},
	{ErrInvalidArgument, "invalid_argument"},
}

// ErrorKind names the kind of err for logs, "unknown" when it carries none.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.kind) {
			return k.name
		}
	}
	return "unknown"
}

// rpcError keeps the node's error object reachable through errors.As while matching ErrRPC.
type rpcError struct {
	obj *ErrorObject
}

func (e *rpcError) Error() string { return ErrRPC.Error() + ": " + e.obj.Error() }

func (e *rpcError) Is(target error) bool { return target == ErrRPC }

func (e *rpcError) Unwrap() error { return e.obj }

// NewRPCError wraps a jsonrpc error object as an ErrRPC.
func NewRPCError(obj *ErrorObject) error {
	return &rpcError{obj: obj}
}
