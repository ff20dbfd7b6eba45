package downstream

// Kind классифицирует исход вызова downstream-сервиса
type Kind int

const (
	// Success 2xx ответ с декодированным телом
	Success Kind = iota
	// InjectedFailure не-2xx ответ с envelope-ом {success:false, error, ...}:
	// сработал сценарий каталога на стороне вызываемого сервиса
	InjectedFailure
	// TransportFailure сетевая ошибка, таймаут, неизвестный сервис
	// или не-envelope ответ
	TransportFailure
)

// String имя исхода для логов
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case InjectedFailure:
		return "injected_failure"
	case TransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// Result исход одного вызова downstream-сервиса.
// Ровно один из трёх видов: Success несёт Payload, InjectedFailure несёт
// поля envelope-а и статус, TransportFailure несёт Cause
type Result struct {
	Kind Kind

	// Payload декодированное тело успешного ответа
	Payload map[string]any

	// ErrorKind класс ошибки из envelope-а
	ErrorKind string
	// Message текст ошибки из envelope-а
	Message string
	// Service сервис-источник отказа из envelope-а. Может отличаться от
	// вызванного сервиса, если тот пробросил отказ своего downstream-а
	Service string
	// StatusCode HTTP статус ответа (для Success тоже заполняется)
	StatusCode int

	// Cause причина транспортного отказа
	Cause error
}

// OK сообщает, что вызов завершился успехом
func (r Result) OK() bool { return r.Kind == Success }

// Failed сообщает, что вызов завершился любым из двух видов отказа
func (r Result) Failed() bool { return r.Kind != Success }
