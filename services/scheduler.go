package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"backend/config"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler owns the two daily ticks: the aggregation sweep shortly
// after midnight and the suggestion + expiry sweep later in the
// morning. Both downstream jobs are idempotent, so a missed or
// repeated tick is harmless. The Run* methods are the per-job entry
// points and can be invoked directly (tests, admin endpoints).
type Scheduler struct {
	cron *cron.Cron
	agg  *AggregationService
	sugg *SuggestionService

	aggregationTime string
	suggestionTime  string
	log             zerolog.Logger
}

func NewScheduler(cfg config.Config, agg *AggregationService, sugg *SuggestionService, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		agg:             agg,
		sugg:            sugg,
		aggregationTime: cfg.AggregationTime,
		suggestionTime:  cfg.SuggestionTime,
		log:             log,
	}
}

// cronSpec converts an "HH:MM" clock time into a five-field cron spec.
func cronSpec(clock string) (string, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid clock time %q, want HH:MM", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return "", fmt.Errorf("invalid hour in clock time %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return "", fmt.Errorf("invalid minute in clock time %q", clock)
	}
	return fmt.Sprintf("%d %d * * *", m, h), nil
}

func (s *Scheduler) Start() error {
	aggSpec, err := cronSpec(s.aggregationTime)
	if err != nil {
		return fmt.Errorf("aggregation schedule: %w", err)
	}
	suggSpec, err := cronSpec(s.suggestionTime)
	if err != nil {
		return fmt.Errorf("suggestion schedule: %w", err)
	}

	if _, err := s.cron.AddFunc(aggSpec, func() { s.RunAggregationTick(context.Background()) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(suggSpec, func() { s.RunSuggestionTick(context.Background()) }); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().
		Str("aggregation", s.aggregationTime).
		Str("suggestions", s.suggestionTime).
		Msg("scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunAggregationTick rolls up the just-closed calendar day for every user.
func (s *Scheduler) RunAggregationTick(ctx context.Context) {
	day := time.Now().AddDate(0, 0, -1)
	if err := s.agg.AggregateAllUsers(ctx, day); err != nil {
		s.log.Error().Err(err).Msg("aggregation tick failed")
	}
}

// RunSuggestionTick expires yesterday's stale batch, then generates
// today's suggestions for every onboarded user.
func (s *Scheduler) RunSuggestionTick(ctx context.Context) {
	if _, err := s.sugg.ExpireStale(ctx); err != nil {
		s.log.Error().Err(err).Msg("expiry tick failed")
	}
	if _, err := s.sugg.GenerateForAllUsers(ctx); err != nil {
		s.log.Error().Err(err).Msg("suggestion tick failed")
	}
}
