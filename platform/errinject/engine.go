package errinject

import "math/rand"

// Rand источник случайности для решений движка.
// Выделен в интерфейс, чтобы тесты могли подставить детерминированную
// последовательность
type Rand interface {
	// Float64 возвращает значение из [0.0, 1.0)
	Float64() float64
}

// globalRand делегирует глобальному генератору math/rand,
// он потокобезопасен без дополнительных блокировок
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Injection описывает принятое решение об инъекции отказа
type Injection struct {
	// Scenario имя сработавшего сценария, для логов и атрибутов span-ов
	Scenario string
	// ErrorKind класс ошибки для envelope-а
	ErrorKind string
	// Message текст ошибки
	Message string
	// StatusCode HTTP статус ответа
	StatusCode int
}

// Engine решает, какие запросы получат искусственные отказы.
// Каталог read-only после создания, Evaluate можно звать из любых горутин
type Engine struct {
	catalog Catalog
	rnd     Rand
}

// New создаёт движок поверх каталога.
// rnd == nil включает глобальный генератор math/rand
func New(catalog Catalog, rnd Rand) *Engine {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Engine{catalog: catalog, rnd: rnd}
}

// Evaluate решает, вернуть ли отказ на запрос endpoint сервиса service.
// Сценарии сервиса проверяются в порядке объявления; каждый совпавший по
// паттернам получает независимый бросок rnd.Float64() < Rate, первый
// сработавший выигрывает. Несовпавшие сценарии бросков не потребляют.
// Неизвестный сервис или отсутствие совпадений — просто нет инъекции
func (e *Engine) Evaluate(service, endpoint string) (Injection, bool) {
	scenarios, ok := e.catalog[service]
	if !ok {
		return Injection{}, false
	}

	for _, sc := range scenarios {
		if !sc.Matches(endpoint) {
			continue
		}
		if e.rnd.Float64() < sc.Rate {
			return Injection{
				Scenario:   sc.Name,
				ErrorKind:  sc.ErrorKind,
				Message:    sc.Message,
				StatusCode: sc.StatusCode,
			}, true
		}
	}
	return Injection{}, false
}
