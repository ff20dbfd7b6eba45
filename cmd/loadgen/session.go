package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/personas"
)

// searchQueries запросы, которые покупатели обычно набирают в поиске
var searchQueries = []string{
	"feature flags",
	"rollout",
	"testing",
	"targeting",
	"sdk",
	"experiment",
	"deployment",
	"configuration",
}

// browseProducts товары витрины, по карточкам которых ходят сессии
var browseProducts = []string{
	"prod_001", "prod_002", "prod_003", "prod_004",
	"prod_005", "prod_006", "prod_007", "prod_008",
}

// cartItem позиция корзины в том виде, в котором её шлёт фронтенд
type cartItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// cartCatalog товары, доступные к покупке на чекауте
var cartCatalog = []cartItem{
	{ID: "prod_001", Name: "Feature Flag Starter Kit", Price: 29.99},
	{ID: "prod_002", Name: "Progressive Rollout Pro", Price: 49.99},
	{ID: "prod_003", Name: "A/B Testing Suite", Price: 79.99},
	{ID: "prod_004", Name: "Targeting Rules Package", Price: 39.99},
	{ID: "prod_005", Name: "Segment Builder", Price: 59.99},
}

// Паузы "на подумать" между действиями покупателя
const (
	defaultThinkMin = 200 * time.Millisecond
	defaultThinkMax = 800 * time.Millisecond
)

// session один проход покупателя по витрине
type session struct {
	id       string
	persona  personas.Persona
	gateway  string
	client   *http.Client
	rng      *rand.Rand
	report   *Report
	logger   *zap.Logger
	thinkMin time.Duration
	thinkMax time.Duration
	requests int
	failures int
}

func newSession(gateway string, persona personas.Persona, rng *rand.Rand, report *Report, logger *zap.Logger) *session {
	raw := uuid.New()
	id := "sess_" + hex.EncodeToString(raw[:6])

	return &session{
		id:       id,
		persona:  persona,
		gateway:  gateway,
		client:   &http.Client{Timeout: 10 * time.Second},
		rng:      rng,
		report:   report,
		logger:   logger.With(zap.String("session_id", id)),
		thinkMin: defaultThinkMin,
		thinkMax: defaultThinkMax,
	}
}

// run проводит сессию по всем фазам от главной страницы до чекаута.
// Отмена контекста обрывает прогулку на текущей фазе
func (s *session) run(ctx context.Context) {
	s.logger.Info("Session started", zap.String("user_email", s.persona.Email))

	phases := []func(context.Context){
		s.landing,
		s.browse,
		s.search,
		s.login,
		s.account,
		s.checkout,
		s.explore,
	}
	for _, phase := range phases {
		if ctx.Err() != nil {
			break
		}
		phase(ctx)
	}

	s.logger.Info("Session completed",
		zap.Int("requests", s.requests),
		zap.Int("failures", s.failures),
	)
}

// landing главная страница со сводкой витрины
func (s *session) landing(ctx context.Context) {
	s.get(ctx, "/api/dashboard")
	s.think(ctx)
}

// browse каталог и одна-две карточки товара
func (s *session) browse(ctx context.Context) {
	s.get(ctx, "/api/products")
	s.think(ctx)

	n := 1 + s.rng.Intn(2)
	for i := 0; i < n; i++ {
		s.get(ctx, "/api/products/"+browseProducts[s.rng.Intn(len(browseProducts))])
		s.think(ctx)
	}
}

// search поисковый запрос и, чаще всего, просмотр найденного товара
func (s *session) search(ctx context.Context) {
	query := searchQueries[s.rng.Intn(len(searchQueries))]
	s.post(ctx, "/api/search", map[string]any{"query": query, "limit": 10})
	s.think(ctx)

	if s.rng.Float64() < 0.6 {
		s.get(ctx, "/api/products/"+browseProducts[s.rng.Intn(len(browseProducts))])
		s.think(ctx)
	}
}

// login вход под персоной сессии
func (s *session) login(ctx context.Context) {
	s.post(ctx, "/api/login", map[string]any{
		"email":    s.persona.Email,
		"password": "demo123",
	})
	s.think(ctx)
}

// account личный кабинет: профиль, изредка правка темы, сводка и заказы
func (s *session) account(ctx context.Context) {
	s.get(ctx, "/api/users/"+s.persona.Key)
	s.think(ctx)

	if s.rng.Float64() < 0.3 {
		theme := "dark"
		if s.rng.Float64() < 0.5 {
			theme = "light"
		}
		s.put(ctx, "/api/users/"+s.persona.Key, map[string]any{"theme": theme})
		s.think(ctx)
	}

	s.get(ctx, "/api/dashboard")
	s.think(ctx)
	s.get(ctx, "/api/orders")
	s.think(ctx)
}

// checkout корзина из одной-трёх позиций и просмотр заказов после оплаты
func (s *session) checkout(ctx context.Context) {
	count := 1 + s.rng.Intn(3)
	items := make([]cartItem, 0, count)
	for _, idx := range s.rng.Perm(len(cartCatalog))[:count] {
		items = append(items, cartCatalog[idx])
	}

	s.post(ctx, "/api/checkout", map[string]any{"items": items})
	s.think(ctx)
	s.get(ctx, "/api/orders")
	s.think(ctx)
}

// explore добирает сессию случайными заходами по витрине
func (s *session) explore(ctx context.Context) {
	pages := []string{"/api/products", "/api/dashboard", "/api/orders"}
	n := s.rng.Intn(3)
	for i := 0; i < n; i++ {
		s.get(ctx, pages[s.rng.Intn(len(pages))])
		s.think(ctx)
	}
}

func (s *session) get(ctx context.Context, path string) {
	s.do(ctx, http.MethodGet, path, nil)
}

func (s *session) post(ctx context.Context, path string, body map[string]any) {
	s.do(ctx, http.MethodPost, path, body)
}

func (s *session) put(ctx context.Context, path string, body map[string]any) {
	s.do(ctx, http.MethodPut, path, body)
}

// do выполняет один запрос к gateway и учитывает его исход.
// Ошибочный ответ только считается, повторов нет: сессия идёт дальше,
// как покупатель, увидевший страницу с ошибкой
func (s *session) do(ctx context.Context, method, path string, body map[string]any) {
	if ctx.Err() != nil {
		return
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.logger.Error("Failed to encode request body",
				zap.String("path", path),
				zap.Error(err))
			return
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.gateway+path, payload)
	if err != nil {
		s.logger.Error("Failed to build request",
			zap.String("path", path),
			zap.Error(err))
		return
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		// остановленный прогон обрывает запросы, это не сбой витрины
		if ctx.Err() != nil {
			return
		}
		s.requests++
		s.failures++
		s.report.AddTransportFailure()
		s.logger.Warn("Request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	s.requests++
	s.report.AddResponse(resp.StatusCode)
	if resp.StatusCode >= 400 {
		s.failures++
		s.logger.Warn("Request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
	}
}

// think пауза между действиями покупателя
func (s *session) think(ctx context.Context) {
	if s.thinkMax <= s.thinkMin {
		return
	}

	delay := s.thinkMin + time.Duration(s.rng.Int63n(int64(s.thinkMax-s.thinkMin)))
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
