package main

import (
	"context"
	"dex-slippage/internal/conf"
	"dex-slippage/internal/log"
	"flag"
	"fmt"
	"os"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"go.uber.org/zap"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the name of the compiled software.
	Name = "dex-slippage"
	// Version is the version of the compiled software.
	Version string
	// flagconf is the config flag.
	flagconf string
)

func init() {
	flag.StringVar(&flagconf, "conf", "../../configs", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()
	os.Exit(run())
}

// run returns the exit code so every deferred close happens before exit.
func run() int {
	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	uc, cleanup, err := wireApp(bc.Logger, bc.Rpc)
	if err != nil {
		panic(err)
	}
	defer cleanup()
	defer log.Sync()

	log.Info("start", zap.String("name", Name), zap.String("version", Version), zap.Int("queries", len(bc.Queries)))
	failed := 0
	for _, out := range uc.RunAll(context.Background(), bc.Queries) {
		if out.Err != nil {
			failed++
		}
		fmt.Print(out.Summary())
	}
	if failed > 0 {
		log.Warn("some queries failed", zap.Int("failed", failed))
		return 1
	}
	return 0
}
