package httpclient

import (
	"context"
	"dex-slippage/internal/types"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newNode(t *testing.T, status int, reply string) (*httptest.Server, *[]byte) {
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		got, _ = ioutil.ReadAll(r.Body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestPostJSONRPC(t *testing.T) {
	srv, got := newNode(t, http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":"0x01"}`)
	req := types.NewEthCall("0x0A6A1Beb7b0b3545578818f45f4e6219615d25aD", "0xdba9f93c")

	result, err := PostJSONRPC(context.Background(), srv.URL, req, time.Second)
	assert.NoError(t, err)
	assert.Equal(t, "0x01", result)

	want, _ := json.Marshal(req)
	assert.Equal(t, string(want), string(*got))
}

func TestPostJSONRPCErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reply  string
		kind   error
	}{
		{"server error", http.StatusInternalServerError, `oops`, types.ErrTransport},
		{"not json", http.StatusOK, `<html></html>`, types.ErrTransport},
		{"rpc error", http.StatusOK, `{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"execution reverted"}}`, types.ErrRPC},
		{"no result", http.StatusOK, `{"jsonrpc":"2.0","id":1}`, types.ErrRPC},
		{"null result", http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":null}`, types.ErrRPC},
		{"result not string", http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":{"a":1}}`, types.ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newNode(t, tt.status, tt.reply)
			_, err := PostJSONRPC(context.Background(), srv.URL, types.NewEthCall("0x0A6A1Beb7b0b3545578818f45f4e6219615d25aD", "0x"), time.Second)
			assert.True(t, errors.Is(err, tt.kind), "%v", err)
		})
	}
}

func TestPostJSONRPCUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := PostJSONRPC(context.Background(), url, types.NewEthCall("0x0A6A1Beb7b0b3545578818f45f4e6219615d25aD", "0x"), time.Second)
	assert.True(t, errors.Is(err, types.ErrTransport), "%v", err)
}

func TestPostJSONRPCTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := PostJSONRPC(context.Background(), srv.URL, types.NewEthCall("0x0A6A1Beb7b0b3545578818f45f4e6219615d25aD", "0x"), 20*time.Millisecond)
	assert.True(t, errors.Is(err, types.ErrTransport), "%v", err)
}
