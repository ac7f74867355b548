package config

import (
	"fmt"
	"strconv"

	"github.com/andrew-solarstorm/go-packages/common"

	"github.com/hxuan190/swap-router/internal/services/router"
)

type RouterConfig struct {
	TradePartitionCount      int
	MinRoutesToCheck         int
	MaxGasCost               int64
	MaxRouteLength           int
	MaxExternalFeePercentage float64
	CutStrategy              string
}

func (c *RouterConfig) Key() string {
	return ROUTER_CONFIG_KEY
}

func (c *RouterConfig) Load() error {
	c.TradePartitionCount = common.GetEnvOrDefaultInt("ROUTER_TRADE_PARTITION_COUNT", router.DefaultTradePartitionCount)
	c.MinRoutesToCheck = common.GetEnvOrDefaultInt("ROUTER_MIN_ROUTES_TO_CHECK", router.DefaultMinRoutesToCheck)
	c.MaxRouteLength = common.GetEnvOrDefaultInt("ROUTER_MAX_ROUTE_LENGTH", router.DefaultMaxRouteLength)
	c.CutStrategy = common.GetEnvOrDefault("ROUTER_CUT_STRATEGY", string(router.CutQuadratic))

	gas, err := strconv.ParseInt(common.GetEnvOrDefault("ROUTER_MAX_GAS_COST", strconv.FormatInt(router.DefaultMaxGasCost, 10)), 10, 64)
	if err != nil {
		return fmt.Errorf("ROUTER_MAX_GAS_COST: %w", err)
	}
	c.MaxGasCost = gas

	fee, err := strconv.ParseFloat(common.GetEnvOrDefault("ROUTER_MAX_EXTERNAL_FEE", strconv.FormatFloat(router.DefaultMaxExternalFee, 'f', -1, 64)), 64)
	if err != nil {
		return fmt.Errorf("ROUTER_MAX_EXTERNAL_FEE: %w", err)
	}
	c.MaxExternalFeePercentage = fee

	return c.Validate()
}

func (c *RouterConfig) Validate() error {
	return c.ToRouterConfig().Validate()
}

func (c *RouterConfig) ToRouterConfig() router.Config {
	return router.Config{
		TradePartitionCount:      c.TradePartitionCount,
		MinRoutesToCheck:         c.MinRoutesToCheck,
		MaxGasCost:               c.MaxGasCost,
		MaxRouteLength:           c.MaxRouteLength,
		MaxExternalFeePercentage: c.MaxExternalFeePercentage,
		CutStrategy:              router.CutStrategy(c.CutStrategy),
	}
}
