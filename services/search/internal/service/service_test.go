package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/search/internal/index"
	"github.com/shestoi/GoShopSim/services/search/internal/service/mocks"
)

func newService(t *testing.T) (*SearchService, *mocks.InventoryClient) {
	t.Helper()
	inventory := mocks.NewInventoryClient(t)
	svc := NewSearchService(index.New(), inventory, zap.NewNop())
	return svc, inventory
}

// productOK успешный ответ склада с остатком и ценой
func productOK(productID string, stock int, price float64) downstream.Result {
	return downstream.Result{
		Kind: downstream.Success,
		Payload: map[string]any{
			"success": true,
			"service": topology.InventoryService,
			"product": map[string]any{
				"id":    productID,
				"stock": float64(stock),
				"price": price,
			},
		},
		Service:    topology.InventoryService,
		StatusCode: 200,
	}
}

// productNotFound инъецированный отказ склада
func productNotFound() downstream.Result {
	return downstream.Result{
		Kind:       downstream.InjectedFailure,
		Service:    topology.InventoryService,
		ErrorKind:  "ProductNotFoundError",
		Message:    "Product not found in catalog",
		StatusCode: 404,
	}
}

// inventoryDown транспортный отказ склада
func inventoryDown() downstream.Result {
	return downstream.Result{
		Kind:    downstream.TransportFailure,
		Service: topology.InventoryService,
		Message: "connection refused",
		Cause:   errors.New("connection refused"),
	}
}

func intPtr(v int) *int { return &v }

func TestSearchService_Search_EnrichesHitsFromInventory(t *testing.T) {
	// Arrange
	svc, inventory := newService(t)
	ctx := context.Background()
	tc := observability.TraceContext{TraceParent: "00-aaaabbbbccccddddeeeeffff00001111-2222333344445555-01"}
	inventory.On("GetProduct", ctx, tc, "prod_001").Return(productOK("prod_001", 150, 29.99)).Once()
	inventory.On("GetProduct", ctx, tc, "prod_007").Return(productOK("prod_007", 500, 19.99)).Once()

	// Act
	result := svc.Search(ctx, SearchInput{Query: "Kit", Trace: tc})

	// Assert: запрос нормализован, обе позиции обогащены
	require.Equal(t, "kit", result.Query)
	require.Len(t, result.Hits, 2)
	require.Equal(t, "prod_001", result.Hits[0].ID)
	require.Equal(t, intPtr(150), result.Hits[0].Stock)
	require.InDelta(t, 29.99, *result.Hits[0].Price, 0.0001)
	require.Equal(t, "prod_007", result.Hits[1].ID)
	require.Equal(t, intPtr(500), result.Hits[1].Stock)
}

func TestSearchService_Search_MissLeavesHitUnenriched(t *testing.T) {
	// Arrange
	svc, inventory := newService(t)
	ctx := context.Background()
	tc := observability.TraceContext{}
	inventory.On("GetProduct", ctx, tc, "prod_001").Return(productNotFound()).Once()
	inventory.On("GetProduct", ctx, tc, "prod_007").Return(productOK("prod_007", 500, 19.99)).Once()

	// Act
	result := svc.Search(ctx, SearchInput{Query: "kit", Trace: tc})

	// Assert: отказ склада не валит поиск и не трогает соседние позиции
	require.Len(t, result.Hits, 2)
	require.Nil(t, result.Hits[0].Stock)
	require.Nil(t, result.Hits[0].Price)
	require.Equal(t, intPtr(500), result.Hits[1].Stock)
}

func TestSearchService_Search_TransportFailureDoesNotFailSearch(t *testing.T) {
	// Arrange
	svc, inventory := newService(t)
	ctx := context.Background()
	tc := observability.TraceContext{}
	inventory.On("GetProduct", ctx, tc, "prod_003").Return(inventoryDown()).Once()

	// Act
	result := svc.Search(ctx, SearchInput{Query: "testing", Trace: tc})

	// Assert
	require.Len(t, result.Hits, 1)
	require.Equal(t, "prod_003", result.Hits[0].ID)
	require.Nil(t, result.Hits[0].Stock)
}

func TestSearchService_Search_LimitTruncatesBeforeEnrichment(t *testing.T) {
	// Arrange
	svc, inventory := newService(t)
	ctx := context.Background()
	tc := observability.TraceContext{}
	for _, id := range []string{"prod_001", "prod_002", "prod_003"} {
		inventory.On("GetProduct", ctx, tc, id).Return(productNotFound()).Once()
	}

	// Act: пустой запрос отдаёт весь индекс, limit режет до трёх
	result := svc.Search(ctx, SearchInput{Limit: intPtr(3), Trace: tc})

	// Assert: склад спрошен только по попавшим в выдачу позициям
	require.Len(t, result.Hits, 3)
	inventory.AssertNumberOfCalls(t, "GetProduct", 3)
}

func TestSearchService_Search_CategoryFilter(t *testing.T) {
	// Arrange
	svc, inventory := newService(t)
	ctx := context.Background()
	tc := observability.TraceContext{}
	inventory.On("GetProduct", ctx, tc, "prod_002").Return(productNotFound()).Once()
	inventory.On("GetProduct", ctx, tc, "prod_005").Return(productNotFound()).Once()

	// Act
	result := svc.Search(ctx, SearchInput{Category: "tools", Trace: tc})

	// Assert
	require.Len(t, result.Hits, 2)
	require.Equal(t, "prod_002", result.Hits[0].ID)
	require.Equal(t, "prod_005", result.Hits[1].ID)
}

func TestSearchService_Query_NameOnlyWithoutEnrichment(t *testing.T) {
	// Arrange
	svc, inventory := newService(t)

	// Act
	docs := svc.Query(context.Background(), "Testing")

	// Assert: склад не трогается вовсе
	require.Len(t, docs, 1)
	require.Equal(t, "prod_003", docs[0].ID)
	inventory.AssertNotCalled(t, "GetProduct")
}

func TestSearchService_Suggest_CapsAtFive(t *testing.T) {
	// Arrange
	svc, _ := newService(t)

	// Act
	suggestions := svc.Suggest(context.Background(), "")

	// Assert
	require.Len(t, suggestions, 5)
	require.Equal(t, "Feature Flag Starter Kit", suggestions[0])
}

func TestSearchService_Suggest_Substring(t *testing.T) {
	// Arrange
	svc, _ := newService(t)

	// Act
	suggestions := svc.Suggest(context.Background(), "segment")

	// Assert
	require.Equal(t, []string{"segments", "Segment Builder"}, suggestions)
}

func TestSearchService_Categories(t *testing.T) {
	// Arrange
	svc, _ := newService(t)

	// Act + Assert
	require.Equal(t, []string{"kits", "tools", "suites", "packages", "platforms"}, svc.Categories())
}

func TestSearchService_Popular_FixedTop(t *testing.T) {
	// Arrange
	svc, _ := newService(t)

	// Act
	popular := svc.Popular(context.Background())

	// Assert
	require.Equal(t, []PopularQuery{
		{Query: "feature flags", Count: 1250},
		{Query: "rollout", Count: 980},
		{Query: "testing", Count: 750},
		{Query: "targeting", Count: 620},
		{Query: "sdk", Count: 450},
	}, popular)
}
