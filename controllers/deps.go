package controllers

import (
	"backend/services"
)

// Handlers that sit on top of the batch services get their instances
// injected once at startup; plain CRUD handlers go through config.DB.
var (
	suggestionSvc  *services.SuggestionService
	aggregationSvc *services.AggregationService
	gatewaySvc     *services.AIGateway
	hub            *services.RealtimeHub
	pushSvc        *services.PushService
)

func Init(
	sugg *services.SuggestionService,
	agg *services.AggregationService,
	gw *services.AIGateway,
	rt *services.RealtimeHub,
	ps *services.PushService,
) {
	suggestionSvc = sugg
	aggregationSvc = agg
	gatewaySvc = gw
	hub = rt
	pushSvc = ps
}
