//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"dex-slippage/internal/biz"
	"dex-slippage/internal/conf"
	"dex-slippage/internal/log"
	"dex-slippage/internal/platform/ethereum"

	"github.com/google/wire"
)

// wireApp init the slippage usecase.
func wireApp(*conf.Logger, *conf.Rpc) (*biz.SlippageUsecase, func(), error) {
	panic(wire.Build(
		log.NewLogger,
		ethereum.ProviderSet,
		biz.ProviderSet,
	))
}
