package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/swap-router/internal/aggregator"
	"github.com/hxuan190/swap-router/internal/common"
	"github.com/hxuan190/swap-router/internal/config"
	"github.com/hxuan190/swap-router/internal/http"
)

// @title Swap Router API
// @version 1.0
// @description Split trade routing over constant-product, concentrated-liquidity and order-book pools.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	common.InitRuntimeForHFT()

	// load env; a missing .env is fine when the environment is set directly
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded")
	}

	general := &config.GeneralConfig{}
	if err := general.Load(); err != nil {
		log.Error().Err(err).Msg("invalid general config")
		return
	}
	common.InitLogger(general.LogLevel, general.Env)

	// di container config
	conf := container.NewConf(
		general,
		&config.RouterConfig{},
		&config.AggregatorConfig{},
	)

	// di container
	dic, err := container.New(
		conf,

		// services
		&aggregator.Service{},
		&http.HTTPService{},
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create di container")
		return
	}

	// waits for SIGINT/SIGTERM
	if err := dic.Run(); err != nil {
		log.Error().Err(err).Msg("failed to run di container")
		return
	}

	// Run doesn't call Stop, we must do it manually
	log.Info().Msg("Shutting down services...")
	if err := dic.Stop(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("Shutdown complete")
}
