package ethereum

import (
	"context"
	"dex-slippage/internal/biz"
	"dex-slippage/internal/conf"
	"dex-slippage/internal/httpclient"
	"dex-slippage/internal/log"
	"dex-slippage/internal/types"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/google/wire"
	"github.com/pkg/errors"
)

// Client issues eth_call through go-ethereum's rpc client.
type Client struct {
	rpc *rpc.Client
	URL string
}

func NewClient(rawUrl string, timeout time.Duration) (*Client, error) {
	client, err := rpc.DialHTTPWithClient(rawUrl, &http.Client{Timeout: timeout})
	if err != nil {
		log.Errore("new client error: "+rawUrl, err)
		return nil, errors.Wrapf(types.ErrTransport, "dial %s: %v", rawUrl, err)
	}
	return &Client{rpc: client, URL: rawUrl}, nil
}

// EthCall implements biz.Caller
func (c *Client) EthCall(ctx context.Context, req *types.Request) (string, error) {
	var result *string
	if err := c.rpc.CallContext(ctx, &result, req.Method, req.Params...); err != nil {
		return "", classify(err)
	}
	if result == nil {
		return "", errors.Wrap(types.ErrRPC, "response has no result")
	}
	return *result, nil
}

func (c *Client) Close() {
	c.rpc.Close()
}

func classify(err error) error {
	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return errors.Wrapf(types.ErrTransport, "%s\n%s", httpErr.Status, httpErr.Body)
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		obj := &types.ErrorObject{Code: rpcErr.ErrorCode(), Message: rpcErr.Error()}
		var dataErr rpc.DataError
		if errors.As(err, &dataErr) {
			obj.Data = dataErr.ErrorData()
		}
		return types.NewRPCError(obj)
	}
	if errors.Is(err, rpc.ErrNoResult) {
		return errors.Wrap(types.ErrRPC, err.Error())
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return errors.Wrapf(types.ErrMalformedResponse, "result: %v", err)
	}
	return errors.Wrapf(types.ErrTransport, "%v", err)
}

// RawClient posts the eth_call envelope as built, byte for byte.
type RawClient struct {
	URL     string
	Timeout time.Duration
}

// EthCall implements biz.Caller
func (c *RawClient) EthCall(ctx context.Context, req *types.Request) (string, error) {
	return httpclient.PostJSONRPC(ctx, c.URL, req, c.Timeout)
}

// Dialer hands out one caller per node url.
type Dialer struct {
	transport string
	timeout   time.Duration

	lock    sync.Mutex
	clients map[string]*Client
}

func NewDialer(c *conf.Rpc) (*Dialer, func(), error) {
	transport := c.GetTransport()
	if transport != conf.TransportHTTP && transport != conf.TransportGeth {
		return nil, nil, errors.Wrapf(types.ErrInvalidArgument, "unknown rpc transport %q", transport)
	}
	d := &Dialer{
		transport: transport,
		timeout:   c.GetTimeout(),
		clients:   make(map[string]*Client),
	}
	return d, d.Close, nil
}

// Dial implements biz.CallerDialer
func (d *Dialer) Dial(rpcURL string) (biz.Caller, error) {
	if d.transport == conf.TransportHTTP {
		return &RawClient{URL: rpcURL, Timeout: d.timeout}, nil
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	if c, ok := d.clients[rpcURL]; ok {
		return c, nil
	}
	c, err := NewClient(rpcURL, d.timeout)
	if err != nil {
		return nil, err
	}
	d.clients[rpcURL] = c
	return c, nil
}

func (d *Dialer) Close() {
	d.lock.Lock()
	defer d.lock.Unlock()
	for url, c := range d.clients {
		c.Close()
		delete(d.clients, url)
	}
}

// ProviderSet is ethereum transport providers.
var ProviderSet = wire.NewSet(NewDialer, wire.Bind(new(biz.CallerDialer), new(*Dialer)))
