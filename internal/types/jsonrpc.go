package types

import (
	"encoding/json"
	"fmt"
)

const (
	JsonRpcVersion = "2.0"
	MethodEthCall  = "eth_call"
	BlockLatest    = "latest"
)

// Request is a jsonrpc request. Field order is kept as the node sees it on the wire.
type Request struct {
	Jsonrpc string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

// CallObject is the transaction object of an eth_call.
type CallObject struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

// ErrorObject is a jsonrpc error
type ErrorObject struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Response is a jsonrpc response
type Response struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *ErrorObject    `json:"error,omitempty"`
}

// Error implements error interface
func (e *ErrorObject) Error() string {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf("jsonrpc.internal marshal error: %v", err)
	}
	return string(data)
}

// NewEthCall builds the eth_call envelope against the latest block.
func NewEthCall(to, data string) *Request {
	return &Request{
		Jsonrpc: JsonRpcVersion,
		Method:  MethodEthCall,
		Params: []interface{}{
			CallObject{To: to, Data: data},
			BlockLatest,
		},
		ID: 1,
	}
}
