package observability

import "net/http"

// Имена W3C заголовков trace context.
const (
	TraceParentHeader = "traceparent"
	TraceStateHeader  = "tracestate"
)

// TraceContext хранит пару заголовков W3C trace context входящего запроса
// как непрозрачные строки. Между сервисами значения передаются дальше
// байт-в-байт, без разбора и без перезаписи через OTel propagator:
// какой traceparent пришёл на границу системы, такой и уходит во все
// downstream вызовы. Отсутствующие заголовки дают пустые строки,
// это нормальное состояние (начало нового трейса).
type TraceContext struct {
	TraceParent string
	TraceState  string
}

// TraceContextFromHeaders извлекает пару trace context заголовков из h.
// Никогда не возвращает ошибку: нет заголовков — будет пустой TraceContext
func TraceContextFromHeaders(h http.Header) TraceContext {
	return TraceContext{
		TraceParent: h.Get(TraceParentHeader),
		TraceState:  h.Get(TraceStateHeader),
	}
}

// Inject добавляет непустые значения пары в h, перезаписывая уже существующие.
// Inject(Extract(h)) идемпотентен: значения копируются без изменений
func (tc TraceContext) Inject(h http.Header) {
	if tc.TraceParent != "" {
		h.Set(TraceParentHeader, tc.TraceParent)
	}
	if tc.TraceState != "" {
		h.Set(TraceStateHeader, tc.TraceState)
	}
}

// IsZero сообщает, что входящий запрос не нёс trace context
func (tc TraceContext) IsZero() bool {
	return tc.TraceParent == "" && tc.TraceState == ""
}
