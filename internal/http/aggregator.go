package http

import (
	"context"

	"github.com/hxuan190/swap-router/internal/aggregator"
	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/pool"
)

//go:generate mockgen -destination=mock/aggregator.go -package=mock . Aggregator

// Aggregator is the part of aggregator.Service the handlers use.
type Aggregator interface {
	Quote(ctx context.Context, req aggregator.QuoteRequest) (*domain.CompleteTradeRoute, error)
	Pools() []pool.Spec
	Pool(uid string) (pool.Spec, bool)
	ReplacePools(specs []pool.Spec) error
	UpsertPools(specs []pool.Spec) error
	Coins() []aggregator.CoinInfo
	Stats() aggregator.Stats
}
