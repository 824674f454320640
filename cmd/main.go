package main

import (
	"backend/config"
	"backend/controllers"
	"backend/routes"
	"backend/services"
)

func main() {
	logger := config.NewLogger("wellness-backend")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load configuration")
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("init database")
	}

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(cfg, db)
	if err != nil {
		logger.Warn().Err(err).Msg("push disabled: SNS client unavailable")
		push = nil
	}
	alerts := services.NewAlertBus(db, hub, push)

	gateway := services.NewAIGateway(cfg, services.NewOpenAIProvider(cfg), logger)
	aggregator := services.NewAggregationService(db, logger)
	suggestions := services.NewSuggestionService(cfg, db, gateway, alerts, logger)

	scheduler := services.NewScheduler(cfg, aggregator, suggestions, logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("start scheduler")
	}
	defer scheduler.Stop()

	controllers.Init(suggestions, aggregator, gateway, hub, push)

	r := routes.SetupRouter()
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal().Err(err).Msg("http server stopped")
	}
}
