package httpclient

import (
	"bytes"
	"context"
	"dex-slippage/internal/types"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

var globalTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
}

// PostJSONRPC posts request to url and returns the string in the response's result field.
func PostJSONRPC(ctx context.Context, url string, request *types.Request, timeout time.Duration) (string, error) {
	str, err := json.Marshal(request)
	if err != nil {
		return "", errors.Wrap(types.ErrInvalidArgument, err.Error())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(str))
	if err != nil {
		return "", errors.Wrapf(types.ErrTransport, "new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	client := &http.Client{Transport: globalTransport, Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", errors.Wrapf(types.ErrTransport, "post %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(types.ErrTransport, "read body: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Wrap(types.ErrTransport, httpStatus(resp.StatusCode)+"\n"+string(body))
	}

	var out types.Response
	if err = json.Unmarshal(body, &out); err != nil {
		return "", errors.Wrap(types.ErrTransport, httpStatus(resp.StatusCode)+"\n"+string(body))
	}
	if out.Error != nil {
		return "", types.NewRPCError(out.Error)
	}
	if len(out.Result) == 0 || string(out.Result) == "null" {
		return "", errors.Wrap(types.ErrRPC, "response has no result")
	}
	var result string
	if err = json.Unmarshal(out.Result, &result); err != nil {
		return "", errors.Wrapf(types.ErrMalformedResponse, "result %s is not a string", out.Result)
	}
	return result, nil
}

func httpStatus(statusCode int) string {
	return "HTTP " + strconv.Itoa(statusCode) + " " + http.StatusText(statusCode)
}
