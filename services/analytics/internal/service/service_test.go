package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/services/analytics/internal/repository/memory"
)

func newService(t *testing.T) (*AnalyticsService, *memory.Repository) {
	t.Helper()
	repo := memory.NewRepository()
	return NewAnalyticsService(repo, zap.NewNop()), repo
}

func TestAnalyticsService_Track_RecordsEvent(t *testing.T) {
	// Arrange
	svc, repo := newService(t)
	ctx := context.Background()

	// Act
	event, err := svc.Track(ctx, TrackInput{
		Name:       "user.login",
		UserKey:    "usr_003",
		Properties: map[string]any{"auth_method": "password"},
	})

	// Assert
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(event.ID, "evt_"), "event id, got %s", event.ID)
	require.Len(t, event.ID, len("evt_")+12)
	require.Equal(t, "user.login", event.Name)
	require.Equal(t, "usr_003", event.UserKey)
	require.Greater(t, event.Timestamp, 0.0)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestAnalyticsService_Track_AnonymousDefaults(t *testing.T) {
	// Arrange
	svc, _ := newService(t)

	// Act
	event, err := svc.Track(context.Background(), TrackInput{})

	// Assert
	require.NoError(t, err)
	require.Equal(t, "unknown_event", event.Name)
	require.Equal(t, "anonymous", event.UserKey)
}

func TestAnalyticsService_TrackBatch_ProcessesAll(t *testing.T) {
	// Arrange
	svc, repo := newService(t)
	ctx := context.Background()

	// Act
	processed, err := svc.TrackBatch(ctx, []TrackInput{
		{Name: "product.viewed", UserKey: "usr_001"},
		{Name: "cart.add", UserKey: "usr_001"},
		{},
	})

	// Assert
	require.NoError(t, err)
	require.Equal(t, 3, processed)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestAnalyticsService_TrackBatch_EmptyBatch(t *testing.T) {
	// Arrange
	svc, repo := newService(t)

	// Act
	processed, err := svc.TrackBatch(context.Background(), nil)

	// Assert
	require.NoError(t, err)
	require.Equal(t, 0, processed)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestAnalyticsService_TrackPageview_StoresPageViewEvent(t *testing.T) {
	// Arrange
	svc, repo := newService(t)
	ctx := context.Background()

	// Act
	pageview, err := svc.TrackPageview(ctx, PageviewInput{})

	// Assert
	require.NoError(t, err)
	require.Equal(t, "/", pageview.Page)
	require.Equal(t, "anonymous", pageview.UserKey)
	require.Greater(t, pageview.Timestamp, 0.0)

	top, err := repo.TopNames(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.Equal(t, "page.view", top[0].Name)
}

func TestAnalyticsService_Metrics_ReflectsStore(t *testing.T) {
	// Arrange
	svc, _ := newService(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.Track(ctx, TrackInput{Name: "user.login", UserKey: "usr_002"})
		require.NoError(t, err)
	}
	_, err := svc.Track(ctx, TrackInput{Name: "product.viewed", UserKey: "usr_002"})
	require.NoError(t, err)

	// Act
	metrics, err := svc.Metrics(ctx)

	// Assert
	require.NoError(t, err)
	require.Equal(t, 4, metrics.EventsTrackedToday)
	require.Equal(t, []TopEvent{
		{Name: "user.login", Count: 3},
		{Name: "product.viewed", Count: 1},
	}, metrics.TopEvents)

	// Синтетические агрегаты остаются в диапазонах референсного дашборда
	require.GreaterOrEqual(t, metrics.DailyActiveUsers, 1000)
	require.LessOrEqual(t, metrics.DailyActiveUsers, 5000)
	require.GreaterOrEqual(t, metrics.ConversionRate, 0.02)
	require.LessOrEqual(t, metrics.ConversionRate, 0.08)
	require.GreaterOrEqual(t, metrics.BounceRate, 0.3)
	require.LessOrEqual(t, metrics.BounceRate, 0.5)
}

func TestAnalyticsService_Metrics_FreshStoreSynthesizesTop(t *testing.T) {
	// Arrange
	svc, _ := newService(t)

	// Act
	metrics, err := svc.Metrics(context.Background())

	// Assert: на пустом хранилище топ синтетический, но имена фиксированные
	require.NoError(t, err)
	require.Equal(t, 0, metrics.EventsTrackedToday)
	require.Len(t, metrics.TopEvents, 4)
	require.Equal(t, "user.login", metrics.TopEvents[0].Name)
	require.Equal(t, "product.viewed", metrics.TopEvents[1].Name)
	require.Equal(t, "cart.add", metrics.TopEvents[2].Name)
	require.Equal(t, "checkout.complete", metrics.TopEvents[3].Name)
	for _, top := range metrics.TopEvents {
		require.Greater(t, top.Count, 0)
	}
}

func TestAnalyticsService_Funnel_FixedShape(t *testing.T) {
	// Arrange
	svc, _ := newService(t)

	// Act
	funnel := svc.Funnel(context.Background())

	// Assert
	require.Equal(t, "Purchase Funnel", funnel.Name)
	require.Equal(t, []FunnelStep{
		{Name: "Product View", Count: 10000, Rate: 1.0},
		{Name: "Add to Cart", Count: 3500, Rate: 0.35},
		{Name: "Begin Checkout", Count: 1200, Rate: 0.12},
		{Name: "Complete Purchase", Count: 450, Rate: 0.045},
	}, funnel.Steps)
	require.Equal(t, 0.045, funnel.OverallConversion)
}
