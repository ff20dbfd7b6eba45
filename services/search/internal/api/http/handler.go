package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/errinject"
	"github.com/shestoi/GoShopSim/platform/httperr"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/search/internal/index"
	"github.com/shestoi/GoShopSim/services/search/internal/service"
)

// Handler содержит HTTP-обработчики Search Service
type Handler struct {
	searchService *service.SearchService
	engine        *errinject.Engine
	version       string
	logger        *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(searchService *service.SearchService, engine *errinject.Engine, version string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		searchService: searchService,
		engine:        engine,
		version:       version,
		logger:        logger,
	}
}

// SearchRequest тело запроса POST /search. Limit nil - дефолтный размер
type SearchRequest struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Limit    *int   `json:"limit"`
}

// HitDTO позиция выдачи. stock и price присутствуют только у позиций,
// обогащённых со склада
type HitDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Stock    *int     `json:"stock,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// SearchResponse тело ответа POST /search
type SearchResponse struct {
	Success bool     `json:"success"`
	Service string   `json:"service"`
	Query   string   `json:"query"`
	Results []HitDTO `json:"results"`
	Total   int      `json:"total"`
}

// QueryRequest тело запроса POST /query
type QueryRequest struct {
	Q string `json:"q"`
}

// DocumentDTO документ индекса в HTTP ответе
type DocumentDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// QueryResponse тело ответа POST /query
type QueryResponse struct {
	Success bool          `json:"success"`
	Service string        `json:"service"`
	Results []DocumentDTO `json:"results"`
}

// SuggestResponse тело ответа GET /suggest
type SuggestResponse struct {
	Success     bool     `json:"success"`
	Service     string   `json:"service"`
	Suggestions []string `json:"suggestions"`
}

// CategoriesResponse тело ответа GET /categories
type CategoriesResponse struct {
	Success    bool     `json:"success"`
	Service    string   `json:"service"`
	Categories []string `json:"categories"`
}

// PopularQueryDTO популярный запрос со счётчиком
type PopularQueryDTO struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// PopularResponse тело ответа GET /popular
type PopularResponse struct {
	Success bool              `json:"success"`
	Service string            `json:"service"`
	Popular []PopularQueryDTO `json:"popular"`
}

// RootResponse тело ответа корневого эндпоинта
type RootResponse struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// Search обрабатывает POST /search - поиск с обогащением со склада
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.SearchService, "/search"); ok {
		httperr.WriteInjection(w, topology.SearchService, inj)
		return
	}

	var req SearchRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.SearchService, httperr.KindValidation, err.Error())
		return
	}

	result := h.searchService.Search(r.Context(), service.SearchInput{
		Query:    req.Query,
		Category: req.Category,
		Limit:    req.Limit,
		Trace:    observability.TraceContextFromHeaders(r.Header),
	})

	hits := make([]HitDTO, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hits = append(hits, HitDTO{
			ID:       hit.ID,
			Name:     hit.Name,
			Category: hit.Category,
			Tags:     hit.Tags,
			Stock:    hit.Stock,
			Price:    hit.Price,
		})
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Success: true,
		Service: topology.SearchService,
		Query:   result.Query,
		Results: hits,
		Total:   len(hits),
	})
}

// Query обрабатывает POST /query - упрощённый поиск по имени
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.SearchService, "/query"); ok {
		httperr.WriteInjection(w, topology.SearchService, inj)
		return
	}

	var req QueryRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.SearchService, httperr.KindValidation, err.Error())
		return
	}

	docs := h.searchService.Query(r.Context(), req.Q)

	writeJSON(w, http.StatusOK, QueryResponse{
		Success: true,
		Service: topology.SearchService,
		Results: documentDTOs(docs),
	})
}

// Suggest обрабатывает GET /suggest?q= - подсказки по подстроке
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	suggestions := h.searchService.Suggest(r.Context(), r.URL.Query().Get("q"))

	writeJSON(w, http.StatusOK, SuggestResponse{
		Success:     true,
		Service:     topology.SearchService,
		Suggestions: suggestions,
	})
}

// Categories обрабатывает GET /categories
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CategoriesResponse{
		Success:    true,
		Service:    topology.SearchService,
		Categories: h.searchService.Categories(),
	})
}

// Popular обрабатывает GET /popular - топ поисковых запросов
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	popular := h.searchService.Popular(r.Context())

	queries := make([]PopularQueryDTO, 0, len(popular))
	for _, p := range popular {
		queries = append(queries, PopularQueryDTO{Query: p.Query, Count: p.Count})
	}

	writeJSON(w, http.StatusOK, PopularResponse{
		Success: true,
		Service: topology.SearchService,
		Popular: queries,
	})
}

// Root обрабатывает корневой эндпоинт - краткая информация о сервисе
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Service:   topology.SearchService,
		Version:   h.version,
		Endpoints: []string{"/health", "/search", "/query", "/suggest", "/categories", "/popular"},
	})
}

// documentDTOs конвертирует документы индекса в DTO
func documentDTOs(docs []index.Document) []DocumentDTO {
	result := make([]DocumentDTO, 0, len(docs))
	for _, doc := range docs {
		result = append(result, DocumentDTO{
			ID:       doc.ID,
			Name:     doc.Name,
			Category: doc.Category,
			Tags:     doc.Tags,
		})
	}
	return result
}

// decodeBody декодирует JSON тело запроса. Пустое тело не ошибка:
// все поля запросов демо-стенда опциональны
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("invalid JSON body: %v", err)
}

// writeJSON пишет успешный JSON ответ
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
