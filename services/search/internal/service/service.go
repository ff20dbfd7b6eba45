package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/observability"

	"github.com/shestoi/GoShopSim/services/search/internal/index"
)

// Задержки поисковых операций
const (
	searchDelay  = 150 * time.Millisecond
	queryDelay   = 100 * time.Millisecond
	suggestDelay = 50 * time.Millisecond
	popularDelay = 80 * time.Millisecond
)

// defaultLimit размер выдачи, когда клиент его не задал
const defaultLimit = 10

// maxSuggestions предел числа подсказок
const maxSuggestions = 5

// SearchService ищет по встроенному индексу и обогащает выдачу
// данными склада
type SearchService struct {
	index     *index.Index
	inventory InventoryClient
	logger    *zap.Logger
}

// NewSearchService создаёт поисковый сервис
func NewSearchService(ix *index.Index, inventory InventoryClient, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SearchService{
		index:     ix,
		inventory: inventory,
		logger:    logger,
	}
}

// SearchInput параметры поиска. Limit nil - дефолтный размер выдачи
type SearchInput struct {
	Query    string
	Category string
	Limit    *int
	Trace    observability.TraceContext
}

// Hit документ выдачи. Stock и Price появляются только после
// успешного обогащения со склада
type Hit struct {
	ID       string
	Name     string
	Category string
	Tags     []string
	Stock    *int
	Price    *float64
}

// SearchResult выдача поиска
type SearchResult struct {
	Query string
	Hits  []Hit
}

// Search отбирает документы по запросу и категории, режет выдачу
// по limit и обогащает каждую позицию остатком и ценой со склада.
// Обогащение некритично: отказ склада оставляет позицию без
// stock и price, но не валит поиск
func (s *SearchService) Search(ctx context.Context, input SearchInput) SearchResult {
	query := strings.ToLower(input.Query)

	limit := defaultLimit
	if input.Limit != nil {
		limit = *input.Limit
	}
	if limit < 0 {
		limit = 0
	}

	simulateWork(ctx, searchDelay)

	docs := s.index.Search(query, input.Category)
	if len(docs) > limit {
		docs = docs[:limit]
	}

	s.logger.Info("Search query executed",
		zap.String("query", query),
		zap.String("category", input.Category),
		zap.Int("result_count", len(docs)),
	)

	hits := make([]Hit, 0, len(docs))
	for _, doc := range docs {
		hit := Hit{
			ID:       doc.ID,
			Name:     doc.Name,
			Category: doc.Category,
			Tags:     doc.Tags,
		}
		s.enrich(ctx, &hit, input.Trace)
		hits = append(hits, hit)
	}

	return SearchResult{Query: query, Hits: hits}
}

// Query упрощённый поиск только по имени документа, без обогащения
func (s *SearchService) Query(ctx context.Context, q string) []index.Document {
	simulateWork(ctx, queryDelay)

	return s.index.MatchName(q)
}

// Suggest возвращает до пяти подсказок по подстроке
func (s *SearchService) Suggest(ctx context.Context, prefix string) []string {
	simulateWork(ctx, suggestDelay)

	suggestions := s.index.Suggest(prefix)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// Categories возвращает категории индекса
func (s *SearchService) Categories() []string {
	return s.index.Categories()
}

// PopularQuery популярный запрос со счётчиком
type PopularQuery struct {
	Query string
	Count int
}

// Popular возвращает фиксированный топ поисковых запросов
func (s *SearchService) Popular(ctx context.Context) []PopularQuery {
	simulateWork(ctx, popularDelay)

	return []PopularQuery{
		{Query: "feature flags", Count: 1250},
		{Query: "rollout", Count: 980},
		{Query: "testing", Count: 750},
		{Query: "targeting", Count: 620},
		{Query: "sdk", Count: 450},
	}
}

// enrich дописывает в позицию остаток и цену со склада
func (s *SearchService) enrich(ctx context.Context, hit *Hit, tc observability.TraceContext) {
	res := s.inventory.GetProduct(ctx, tc, hit.ID)
	if res.Failed() {
		s.logger.Warn("Failed to enrich search hit with inventory data",
			zap.String("product_id", hit.ID),
			zap.String("error_kind", res.ErrorKind),
			zap.String("message", res.Message),
		)
		return
	}

	product, _ := res.Payload["product"].(map[string]any)
	stockValue, _ := product["stock"].(float64)
	priceValue, _ := product["price"].(float64)

	stock := int(stockValue)
	hit.Stock = &stock
	hit.Price = &priceValue
}

// simulateWork имитирует работу поискового движка, уважая отмену контекста
func simulateWork(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
