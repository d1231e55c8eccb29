package conf

import (
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const CONFIG_PATH = "../../configs"

func TestRpcDefaults(t *testing.T) {
	var r *Rpc
	assert.Equal(t, 10*time.Second, r.GetTimeout())
	assert.Equal(t, TransportHTTP, r.GetTransport())

	r = &Rpc{Timeout: "3s", Transport: TransportGeth}
	assert.Equal(t, 3*time.Second, r.GetTimeout())
	assert.Equal(t, TransportGeth, r.GetTransport())

	r = &Rpc{Timeout: "soon"}
	assert.Equal(t, 10*time.Second, r.GetTimeout())
}

func TestLoadConfig(t *testing.T) {
	c := config.New(config.WithSource(file.NewSource(CONFIG_PATH)))
	defer c.Close()
	require.NoError(t, c.Load())

	var bc Bootstrap
	require.NoError(t, c.Scan(&bc))

	assert.Equal(t, "info", bc.Logger.Level)
	assert.Equal(t, TransportHTTP, bc.Rpc.GetTransport())
	assert.Equal(t, 10*time.Second, bc.Rpc.GetTimeout())
	require.Len(t, bc.Queries, 4)

	q := bc.Queries[0]
	assert.Equal(t, "USDC / WMATIC", q.Pair)
	assert.Equal(t, "priced-pair", q.Layout)
	assert.Equal(t, "0x3087bfd8", q.Function)
	assert.Equal(t, int32(6), q.ADecimals)
	assert.Equal(t, int32(18), q.BDecimals)
	assert.Equal(t, "1000000000", q.Amount)
	assert.Nil(t, q.PriceDecimals)

	assert.Equal(t, "swap-amount", bc.Queries[2].Layout)
	assert.Equal(t, "1000000000000000", bc.Queries[3].Amount)
}
