package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/services/analytics/internal/repository"
)

// Задержки обработки событий
const (
	trackDelay     = 50 * time.Millisecond
	perEventDelay  = 20 * time.Millisecond
	pageviewDelay  = 30 * time.Millisecond
	aggregateDelay = 200 * time.Millisecond
	funnelDelay    = 150 * time.Millisecond
)

// AnalyticsService принимает события и отдаёт агрегированные метрики.
// Большая часть метрик синтетическая, реальны только счётчики событий
type AnalyticsService struct {
	events repository.EventRepository
	logger *zap.Logger
}

// NewAnalyticsService создаёт сервис аналитики
func NewAnalyticsService(events repository.EventRepository, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AnalyticsService{
		events: events,
		logger: logger,
	}
}

// TrackInput входные данные одного события
type TrackInput struct {
	Name       string
	UserKey    string
	Properties map[string]any
}

// Track сохраняет одно событие
func (s *AnalyticsService) Track(ctx context.Context, input TrackInput) (repository.Event, error) {
	name := input.Name
	if name == "" {
		name = "unknown_event"
	}

	userKey := input.UserKey
	if userKey == "" {
		userKey = "anonymous"
	}

	simulateWork(ctx, trackDelay)

	event := repository.Event{
		ID:        newID("evt"),
		Name:      name,
		UserKey:   userKey,
		Timestamp: unixSeconds(),
	}

	if err := s.events.Record(ctx, event); err != nil {
		return repository.Event{}, fmt.Errorf("failed to record event: %w", err)
	}

	s.logger.Debug("Event tracked",
		zap.String("event_id", event.ID),
		zap.String("event_name", name),
		zap.String("user_key", userKey),
		zap.Any("properties", input.Properties),
	)

	return event, nil
}

// TrackBatch сохраняет пачку событий и возвращает число обработанных
func (s *AnalyticsService) TrackBatch(ctx context.Context, inputs []TrackInput) (int, error) {
	for _, input := range inputs {
		name := input.Name
		if name == "" {
			name = "unknown_event"
		}

		userKey := input.UserKey
		if userKey == "" {
			userKey = "anonymous"
		}

		simulateWork(ctx, perEventDelay)

		event := repository.Event{
			ID:        newID("evt"),
			Name:      name,
			UserKey:   userKey,
			Timestamp: unixSeconds(),
		}

		if err := s.events.Record(ctx, event); err != nil {
			return 0, fmt.Errorf("failed to record batch event: %w", err)
		}
	}

	s.logger.Info("Batch tracked", zap.Int("batch_size", len(inputs)))

	return len(inputs), nil
}

// PageviewInput входные данные просмотра страницы
type PageviewInput struct {
	Page     string
	UserKey  string
	Referrer string
}

// Pageview зафиксированный просмотр страницы
type Pageview struct {
	Page      string
	UserKey   string
	Timestamp float64
}

// TrackPageview сохраняет просмотр страницы как событие page.view
func (s *AnalyticsService) TrackPageview(ctx context.Context, input PageviewInput) (Pageview, error) {
	page := input.Page
	if page == "" {
		page = "/"
	}

	userKey := input.UserKey
	if userKey == "" {
		userKey = "anonymous"
	}

	simulateWork(ctx, pageviewDelay)

	pageview := Pageview{
		Page:      page,
		UserKey:   userKey,
		Timestamp: unixSeconds(),
	}

	err := s.events.Record(ctx, repository.Event{
		ID:        newID("evt"),
		Name:      "page.view",
		UserKey:   userKey,
		Timestamp: pageview.Timestamp,
	})
	if err != nil {
		return Pageview{}, fmt.Errorf("failed to record pageview: %w", err)
	}

	s.logger.Debug("Pageview",
		zap.String("page", page),
		zap.String("user_key", userKey),
		zap.String("referrer", input.Referrer),
	)

	return pageview, nil
}

// TopEvent событие в топе метрик
type TopEvent struct {
	Name  string
	Count int
}

// Metrics агрегированные метрики за день
type Metrics struct {
	DailyActiveUsers   int
	SessionsToday      int
	AvgSessionDuration int
	ConversionRate     float64
	BounceRate         float64
	PageViewsToday     int
	EventsTrackedToday int
	TopEvents          []TopEvent
}

// Metrics возвращает агрегированные метрики.
// events_tracked_today и топ событий считаются по хранилищу, остальное
// синтезируется: другим цифрам в демо-стенде взяться неоткуда.
// На свежем процессе топ тоже синтетический, чтобы дашборд не пустовал
func (s *AnalyticsService) Metrics(ctx context.Context) (Metrics, error) {
	simulateWork(ctx, aggregateDelay)

	tracked, err := s.events.Count(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("failed to count events: %w", err)
	}

	top, err := s.events.TopNames(ctx, 4)
	if err != nil {
		return Metrics{}, fmt.Errorf("failed to rank events: %w", err)
	}

	topEvents := make([]TopEvent, 0, 4)
	for _, nc := range top {
		topEvents = append(topEvents, TopEvent{Name: nc.Name, Count: nc.Count})
	}
	if len(topEvents) == 0 {
		topEvents = []TopEvent{
			{Name: "user.login", Count: randBetween(500, 2000)},
			{Name: "product.viewed", Count: randBetween(1000, 5000)},
			{Name: "cart.add", Count: randBetween(200, 800)},
			{Name: "checkout.complete", Count: randBetween(50, 200)},
		}
	}

	metrics := Metrics{
		DailyActiveUsers:   randBetween(1000, 5000),
		SessionsToday:      randBetween(2000, 8000),
		AvgSessionDuration: randBetween(120, 600),
		ConversionRate:     randRate(0.02, 0.08),
		BounceRate:         randRate(0.3, 0.5),
		PageViewsToday:     randBetween(10000, 50000),
		EventsTrackedToday: tracked,
		TopEvents:          topEvents,
	}

	s.logger.Info("Metrics retrieved", zap.Int("events_tracked", tracked))

	return metrics, nil
}

// FunnelStep шаг воронки покупки
type FunnelStep struct {
	Name  string
	Count int
	Rate  float64
}

// Funnel воронка покупки
type Funnel struct {
	Name              string
	Steps             []FunnelStep
	OverallConversion float64
}

// Funnel возвращает фиксированную воронку покупки
func (s *AnalyticsService) Funnel(ctx context.Context) Funnel {
	simulateWork(ctx, funnelDelay)

	return Funnel{
		Name: "Purchase Funnel",
		Steps: []FunnelStep{
			{Name: "Product View", Count: 10000, Rate: 1.0},
			{Name: "Add to Cart", Count: 3500, Rate: 0.35},
			{Name: "Begin Checkout", Count: 1200, Rate: 0.12},
			{Name: "Complete Purchase", Count: 450, Rate: 0.045},
		},
		OverallConversion: 0.045,
	}
}

// newID генерирует id вида prefix_<12 hex символов>
func newID(prefix string) string {
	u := uuid.New()
	return prefix + "_" + hex.EncodeToString(u[:6])
}

// unixSeconds текущее время в секундах unix с дробной частью
func unixSeconds() float64 {
	return float64(time.Now().UnixMilli()) / 1000
}

// randBetween целое в отрезке [lo, hi]
func randBetween(lo, hi int) int {
	return lo + rand.Intn(hi-lo+1)
}

// randRate дробь в [lo, hi), округлённая до четырёх знаков
func randRate(lo, hi float64) float64 {
	return math.Round((lo+rand.Float64()*(hi-lo))*10000) / 10000
}

// simulateWork имитирует обработку события, уважая отмену контекста
func simulateWork(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
