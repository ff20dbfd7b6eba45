// Package downstream реализует вызовы между сервисами стека поверх HTTP.
// Клиент разрешает адрес через topology.Registry, переносит входящий
// trace context байт-в-байт и классифицирует исход каждого вызова
// (см. Result). Ретраев нет: отказ возвращается вызывающему как есть
package downstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"
)

// DefaultTimeout предельное время одного вызова, как у reference-стека
const DefaultTimeout = 30 * time.Second

// Client HTTP клиент для межсервисных вызовов
type Client struct {
	registry *topology.Registry
	client   *http.Client
	logger   *zap.Logger
	tracer   trace.Tracer
	timeout  time.Duration
}

// Option настраивает Client
type Option func(*Client)

// WithTimeout меняет предельное время одного вызова
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient подставляет свой http.Client (для тестов и тюнинга транспорта)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithLogger задаёт базовый logger клиента.
// Если в контексте запроса лежит request-logger от HTTPMiddleware,
// он имеет приоритет
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New создаёт клиент поверх реестра сервисов
func New(registry *topology.Registry, opts ...Option) *Client {
	c := &Client{
		registry: registry,
		client:   &http.Client{},
		logger:   zap.NewNop(),
		tracer:   otel.Tracer("downstream"),
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get выполняет GET вызов без тела
func (c *Client) Get(ctx context.Context, service, path string, tc observability.TraceContext) Result {
	return c.Call(ctx, service, path, http.MethodGet, nil, tc)
}

// Post выполняет POST вызов с JSON телом
func (c *Client) Post(ctx context.Context, service, path string, body any, tc observability.TraceContext) Result {
	return c.Call(ctx, service, path, http.MethodPost, body, tc)
}

// Call выполняет один вызов downstream-сервиса и классифицирует исход.
// Ошибки не возвращаются: любой отказ закодирован в Result.
// body != nil сериализуется в JSON. tc переносится в заголовки запроса
// без изменений (литеральная пропагация, не через OTel propagator)
func (c *Client) Call(ctx context.Context, service, path, method string, body any, tc observability.TraceContext) Result {
	log := c.logger
	if l := observability.LoggerFromContext(ctx); l != nil {
		log = l
	}

	base, err := c.registry.Resolve(service)
	if err != nil {
		log.Warn("downstream resolve failed",
			zap.String("downstream", service),
			zap.Error(err))
		return Result{Kind: TransportFailure, Cause: err}
	}
	url := base + path

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "CALL "+service+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("peer.service", service),
			attribute.String("http.method", method),
			attribute.String("http.url", url),
		),
	)
	defer span.End()
	if tc.TraceParent != "" {
		span.SetAttributes(attribute.String("trace.traceparent", tc.TraceParent))
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			span.SetStatus(codes.Error, "marshal body")
			return Result{Kind: TransportFailure, Cause: fmt.Errorf("call %s %s: marshal body: %w", service, path, err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		span.SetStatus(codes.Error, "build request")
		return Result{Kind: TransportFailure, Cause: fmt.Errorf("call %s %s: build request: %w", service, path, err)}
	}
	req.Header.Set("Content-Type", "application/json")
	tc.Inject(req.Header)

	resp, err := c.client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Warn("downstream call failed",
			zap.String("downstream", service),
			zap.String("path", path),
			zap.Error(err))
		return Result{Kind: TransportFailure, Cause: fmt.Errorf("call %s %s: %w", service, path, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, "read body")
		return Result{Kind: TransportFailure, Cause: fmt.Errorf("call %s %s: read body: %w", service, path, err)}
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Поля зеркалят httperr.Envelope: импортировать httperr нельзя,
		// иначе цикл импортов (httperr уже зависит от downstream)
		var env struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
			Message string `json:"message"`
			Service string `json:"service"`
		}
		if err := json.Unmarshal(raw, &env); err == nil && env.Error != "" {
			if env.Service == "" {
				env.Service = service
			}
			span.SetStatus(codes.Error, env.Error)
			log.Warn("downstream returned failure envelope",
				zap.String("downstream", service),
				zap.String("path", path),
				zap.String("error_kind", env.Error),
				zap.Int("status", resp.StatusCode))
			return Result{
				Kind:       InjectedFailure,
				ErrorKind:  env.Error,
				Message:    env.Message,
				Service:    env.Service,
				StatusCode: resp.StatusCode,
			}
		}
		// Не-envelope отказ неотличим от сломанного транспорта
		span.SetStatus(codes.Error, strconv.Itoa(resp.StatusCode))
		return Result{Kind: TransportFailure, Cause: fmt.Errorf("call %s %s: unexpected status %d: %s", service, path, resp.StatusCode, preview(raw))}
	}

	var payload map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			span.SetStatus(codes.Error, "decode body")
			return Result{Kind: TransportFailure, Cause: fmt.Errorf("call %s %s: decode body: %w", service, path, err)}
		}
	}

	log.Debug("downstream call completed",
		zap.String("downstream", service),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode))
	return Result{Kind: Success, Payload: payload, StatusCode: resp.StatusCode}
}

// preview обрезает тело ответа для сообщения об ошибке
func preview(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
