package conf

import (
	"time"
)

type Bootstrap struct {
	Logger  *Logger  `json:"logger"`
	Rpc     *Rpc     `json:"rpc"`
	Queries []*Query `json:"queries"`
}

type Logger struct {
	DEBUG    bool   `json:"debug"`
	FileName string `json:"file_name"`
	Level    string `json:"level"`
}

const (
	TransportHTTP = "http"
	TransportGeth = "geth"
)

type Rpc struct {
	// Timeout of one eth_call, e.g. "10s".
	Timeout   string `json:"timeout"`
	Transport string `json:"transport"`
}

const defaultRpcTimeout = 10 * time.Second

// GetTimeout falls back to 10s when unset or unparsable.
func (r *Rpc) GetTimeout() time.Duration {
	if r == nil || r.Timeout == "" {
		return defaultRpcTimeout
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil || d <= 0 {
		return defaultRpcTimeout
	}
	return d
}

func (r *Rpc) GetTransport() string {
	if r == nil || r.Transport == "" {
		return TransportHTTP
	}
	return r.Transport
}

// Query is one pair to quote against a slippage requester contract.
type Query struct {
	Pair      string `json:"pair"`
	Layout    string `json:"layout"`
	RpcURL    string `json:"rpc_url"`
	Contract  string `json:"contract"`
	Function  string `json:"function"`
	PoolID    string `json:"pool_id"`
	Kind      string `json:"kind"`
	TokenA    string `json:"token_a"`
	TokenB    string `json:"token_b"`
	ADecimals int32  `json:"a_decimals"`
	BDecimals int32  `json:"b_decimals"`
	// Amount in base units of token A, decimal string so it can hold 256 bits.
	Amount string `json:"amount"`
	Sender string `json:"sender"`
	FeedA  string `json:"feed_a"`
	FeedB  string `json:"feed_b"`
	// PriceDecimals fixes the oracle decimals instead of reading them from the result.
	PriceDecimals *int32 `json:"price_decimals,omitempty"`
}
