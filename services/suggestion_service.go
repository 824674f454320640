package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"backend/config"
	"backend/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SuggestionService owns the daily generation sweep and the suggestion
// lifecycle (user actions and expiry).
type SuggestionService struct {
	db          *gorm.DB
	gateway     *AIGateway
	alerts      *AlertBus
	workers     int
	ttl         time.Duration
	userTimeout time.Duration
	log         zerolog.Logger
}

func NewSuggestionService(cfg config.Config, db *gorm.DB, gateway *AIGateway, alerts *AlertBus, log zerolog.Logger) *SuggestionService {
	s := &SuggestionService{
		db:          db,
		gateway:     gateway,
		alerts:      alerts,
		workers:     cfg.SuggestionWorkers,
		ttl:         cfg.SuggestionTTL,
		userTimeout: cfg.AIRequestTimeout * time.Duration(2+len(cfg.AIFallbackModels)),
		log:         log,
	}
	if s.workers <= 0 {
		s.workers = 4
	}
	if s.ttl <= 0 {
		s.ttl = 24 * time.Hour
	}
	if s.userTimeout <= 0 {
		s.userTimeout = 2 * time.Minute
	}
	return s
}

type UserFailure struct {
	UserID uint
	Err    error
}

type BatchReport struct {
	Succeeded []uint
	Failed    []UserFailure
}

// GenerateForAllUsers runs one suggestion sweep over every onboarded
// user through a bounded worker pool. One user's provider or parse
// failure never blocks the rest; each unit of work is capped by a
// per-user timeout so a stalled call cannot hang the sweep.
func (s *SuggestionService) GenerateForAllUsers(ctx context.Context) (BatchReport, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("onboarded = ?", true).Order("id").Find(&users).Error; err != nil {
		return BatchReport{}, fmt.Errorf("list onboarded users: %w", err)
	}

	type result struct {
		userID uint
		err    error
	}

	jobs := make(chan models.User)
	results := make(chan result, len(users))
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				userCtx, cancel := context.WithTimeout(ctx, s.userTimeout)
				err := s.generateForUser(userCtx, u)
				cancel()
				results <- result{userID: u.ID, err: err}
			}
		}()
	}
	for _, u := range users {
		jobs <- u
	}
	close(jobs)
	wg.Wait()
	close(results)

	var report BatchReport
	for r := range results {
		if r.err != nil {
			s.log.Error().Err(r.err).Uint("user_id", r.userID).Msg("suggestion generation failed")
			report.Failed = append(report.Failed, UserFailure{UserID: r.userID, Err: r.err})
			continue
		}
		report.Succeeded = append(report.Succeeded, r.userID)
	}
	sort.Slice(report.Succeeded, func(i, j int) bool { return report.Succeeded[i] < report.Succeeded[j] })
	sort.Slice(report.Failed, func(i, j int) bool { return report.Failed[i].UserID < report.Failed[j].UserID })

	s.log.Info().
		Int("succeeded", len(report.Succeeded)).
		Int("failed", len(report.Failed)).
		Msg("suggestion sweep finished")
	return report, nil
}

func (s *SuggestionService) generateForUser(ctx context.Context, user models.User) error {
	now := time.Now()
	today := dayStart(now)

	// Dedup: one active batch per calendar day.
	var active int64
	if err := s.db.WithContext(ctx).Model(&models.Suggestion{}).
		Where("user_id = ? AND status = ? AND generated_at >= ?", user.ID, models.SuggestionStatusActive, today).
		Count(&active).Error; err != nil {
		return fmt.Errorf("dedup check: %w", err)
	}
	if active > 0 {
		return nil
	}

	figures, err := s.collectFigures(ctx, user.ID, now)
	if err != nil {
		return err
	}

	var goal models.DailyGoal
	if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&goal).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("fetch goals: %w", err)
	}

	reply, err := s.gateway.Generate(ctx, []ChatMessage{
		{Role: RoleSystem, Content: buildSuggestionPrompt(user, goal, figures)},
		{Role: RoleUser, Content: "generate suggestions"},
	})
	if err != nil {
		return err
	}

	items, err := parseSuggestionPayload(reply)
	if err != nil {
		return err
	}

	expires := now.Add(s.ttl)
	suggestions := make([]models.Suggestion, 0, len(items))
	for _, it := range items {
		suggestions = append(suggestions, models.Suggestion{
			UserID:      user.ID,
			Title:       it.Title,
			Description: it.Description,
			Category:    it.Category,
			Priority:    it.Priority,
			Status:      models.SuggestionStatusActive,
			Emoji:       it.Emoji,
			ActionText:  it.ActionText,
			DismissText: it.DismissText,
			GeneratedAt: now,
			ExpiresAt:   expires,
		})
	}
	if err := s.db.WithContext(ctx).Create(&suggestions).Error; err != nil {
		return fmt.Errorf("%w: insert suggestions: %v", ErrStoreWrite, err)
	}

	if s.alerts != nil {
		s.alerts.SuggestionsReady(user.ID, len(suggestions))
	}
	return nil
}

// activityFigures are the numbers quoted in the prompt: today's state
// plus a trailing seven-day picture.
type activityFigures struct {
	TodayHydration  float64
	TodaySleepHours float64
	TodayWorkouts   int
	TodayCalories   float64

	WeekWorkouts    int
	WeekAvgCalories float64
	WeekAvgSleep    float64
}

func (s *SuggestionService) collectFigures(ctx context.Context, userID uint, now time.Time) (activityFigures, error) {
	today := dayStart(now)
	weekAgo := today.AddDate(0, 0, -7)

	var logs []models.Log
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, weekAgo).
		Find(&logs).Error; err != nil {
		return activityFigures{}, fmt.Errorf("fetch logs: %w", err)
	}

	var meals []models.NutritionLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, weekAgo).
		Find(&meals).Error; err != nil {
		return activityFigures{}, fmt.Errorf("fetch meals: %w", err)
	}

	var f activityFigures
	var weekCalories, weekSleep float64
	for _, l := range logs {
		isToday := !l.Date.Before(today)
		switch l.Type {
		case models.LogTypeWorkout:
			f.WeekWorkouts++
			if isToday {
				f.TodayWorkouts++
			}
		case models.LogTypeSleep:
			weekSleep += l.Value
			if isToday {
				f.TodaySleepHours += l.Value
			}
		case models.LogTypeHydration:
			if isToday {
				f.TodayHydration += l.Value
			}
		}
	}
	for _, m := range meals {
		weekCalories += m.Calories
		if !m.Date.Before(today) {
			f.TodayCalories += m.Calories
		}
	}
	f.WeekAvgCalories = weekCalories / 7
	f.WeekAvgSleep = weekSleep / 7
	return f, nil
}

func buildSuggestionPrompt(user models.User, goal models.DailyGoal, f activityFigures) string {
	var sb strings.Builder
	sb.WriteString("You are a wellness coach generating short, personalized daily suggestions.\n\n")

	sb.WriteString("Member profile:\n")
	name := user.FullName
	if name == "" {
		name = "the member"
	}
	sb.WriteString(fmt.Sprintf("- Name: %s\n", name))
	if user.Age > 0 {
		sb.WriteString(fmt.Sprintf("- Age: %d\n", user.Age))
	}
	if user.HeightCm > 0 && user.WeightKg > 0 {
		sb.WriteString(fmt.Sprintf("- Height: %.0f cm, Weight: %.1f kg\n", user.HeightCm, user.WeightKg))
	}
	if user.FitnessGoals != "" {
		sb.WriteString(fmt.Sprintf("- Stated goals: %s\n", user.FitnessGoals))
	}
	if user.HealthConditions != "" {
		sb.WriteString(fmt.Sprintf("- Health conditions: %s\n", user.HealthConditions))
	}
	if goal.Calories > 0 || goal.Hydration > 0 {
		sb.WriteString(fmt.Sprintf("- Daily targets: %.0f kcal, %.0fg protein, %.0f glasses water, %.0f min exercise\n",
			goal.Calories, goal.Protein, goal.Hydration, goal.Exercise))
	}

	sb.WriteString("\nToday so far:\n")
	sb.WriteString(fmt.Sprintf("- Hydration: %.0f glasses\n", f.TodayHydration))
	sb.WriteString(fmt.Sprintf("- Sleep last night: %.1f hours\n", f.TodaySleepHours))
	sb.WriteString(fmt.Sprintf("- Workouts: %d\n", f.TodayWorkouts))
	sb.WriteString(fmt.Sprintf("- Calories: %.0f kcal\n", f.TodayCalories))

	sb.WriteString("\nPast 7 days:\n")
	sb.WriteString(fmt.Sprintf("- Workouts: %d\n", f.WeekWorkouts))
	sb.WriteString(fmt.Sprintf("- Average calories: %.0f kcal/day\n", f.WeekAvgCalories))
	sb.WriteString(fmt.Sprintf("- Average sleep: %.1f hours/night\n", f.WeekAvgSleep))

	sb.WriteString("\nReturn ONLY a JSON array, no prose and no markdown fences. Each element must be an object: ")
	sb.WriteString(`{"title": string, "description": string, "category": "nutrition"|"exercise"|"sleep"|"hydration"|"wellness"|"recovery", "priority": "high"|"medium"|"low", "emoji": string, "actionText": string (optional), "dismissText": string (optional)}.`)
	sb.WriteString(" Return 3 to 5 suggestions.")
	return sb.String()
}

type suggestionPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Emoji       string `json:"emoji"`
	ActionText  string `json:"actionText"`
	DismissText string `json:"dismissText"`
}

// parseSuggestionPayload validates the provider reply against the
// fixed schema. Models occasionally wrap JSON in markdown fences
// despite instructions, so those are tolerated; everything else about
// the shape is strict, and one bad element rejects the whole payload.
func parseSuggestionPayload(raw string) ([]suggestionPayload, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var items []suggestionPayload
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSuggestionPayload, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty suggestion array", ErrMalformedSuggestionPayload)
	}
	for i, it := range items {
		if strings.TrimSpace(it.Title) == "" || strings.TrimSpace(it.Description) == "" {
			return nil, fmt.Errorf("%w: item %d missing title or description", ErrMalformedSuggestionPayload, i)
		}
		if !models.ValidSuggestionCategory(it.Category) {
			return nil, fmt.Errorf("%w: item %d has unknown category %q", ErrMalformedSuggestionPayload, i, it.Category)
		}
		if !models.ValidSuggestionPriority(it.Priority) {
			return nil, fmt.Errorf("%w: item %d has unknown priority %q", ErrMalformedSuggestionPayload, i, it.Priority)
		}
	}
	return items, nil
}

// ExpireStale dismisses every active suggestion whose expiry has
// passed and reports how many rows flipped. Terminal states are never
// touched again.
func (s *SuggestionService) ExpireStale(ctx context.Context) (int64, error) {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.Suggestion{}).
		Where("status = ? AND expires_at < ?", models.SuggestionStatusActive, now).
		Updates(map[string]interface{}{
			"status":       models.SuggestionStatusDismissed,
			"dismissed_at": now,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("%w: expire sweep: %v", ErrStoreWrite, res.Error)
	}
	if res.RowsAffected > 0 {
		s.log.Info().Int64("expired", res.RowsAffected).Msg("stale suggestions dismissed")
	}
	return res.RowsAffected, nil
}

// ListActive returns the user's current suggestions, newest first.
func (s *SuggestionService) ListActive(ctx context.Context, userID uint) ([]models.Suggestion, error) {
	var out []models.Suggestion
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.SuggestionStatusActive).
		Order("generated_at DESC, id").
		Find(&out).Error
	return out, err
}

// Complete marks an active suggestion as acted on.
func (s *SuggestionService) Complete(ctx context.Context, userID, id uint) error {
	return s.transition(ctx, userID, id, models.SuggestionStatusCompleted, "completed_at")
}

// Dismiss marks an active suggestion as declined.
func (s *SuggestionService) Dismiss(ctx context.Context, userID, id uint) error {
	return s.transition(ctx, userID, id, models.SuggestionStatusDismissed, "dismissed_at")
}

func (s *SuggestionService) transition(ctx context.Context, userID, id uint, status, stampField string) error {
	res := s.db.WithContext(ctx).Model(&models.Suggestion{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, models.SuggestionStatusActive).
		Updates(map[string]interface{}{
			"status":   status,
			stampField: time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("%w: update suggestion: %v", ErrStoreWrite, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
