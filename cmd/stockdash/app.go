package main

import (
	"github.com/spf13/viper"
	"github.com/ternarybob/arbor"

	"github.com/komsit37/stockdash/pkg/stockdash/config"
	"github.com/komsit37/stockdash/pkg/stockdash/logging"
	"github.com/komsit37/stockdash/pkg/stockdash/market"
	"github.com/komsit37/stockdash/pkg/stockdash/universe"
	"github.com/komsit37/stockdash/pkg/stockdash/view"
)

// app holds the components shared by every command.
type app struct {
	cfg        *config.Config
	logger     arbor.ILogger
	universe   *universe.Provider
	controller *view.Controller
}

type loader func() (*app, error)

func newApp(v *viper.Viper, configFile string) (*app, error) {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, err
	}
	logger := logging.Init(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})

	var source universe.Source
	if cfg.Universe.File != "" {
		source = universe.YAMLSource{Path: cfg.Universe.File}
	} else {
		source = universe.NewWikipediaSource(cfg.Universe.URL)
	}
	provider := universe.NewProvider(source, logger)

	gateway := market.NewYFGateway(
		market.NewClient(cfg.Market.UpstreamCacheTTL),
		market.WithTimeout(cfg.Market.Timeout),
		market.WithRateLimit(cfg.Market.RatePerSecond),
		market.WithLogger(logger),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		universe: provider,
		controller: &view.Controller{
			Universe:      provider,
			Gateway:       market.NewCachedGateway(gateway, cfg.Cache.TTL, cfg.Cache.Size),
			Logger:        logger,
			DefaultTicker: cfg.View.DefaultTicker,
		},
	}, nil
}
