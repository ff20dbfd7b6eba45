// Package errinject реализует каталог сценариев отказов и движок,
// который решает, вернуть ли на запрос искусственную ошибку.
// Это ядро демо-стека: управляемые отказы дают наблюдаемости что показывать
package errinject

import "strings"

// Scenario описывает один сценарий отказа сервиса
type Scenario struct {
	// Name имя сценария (rate_limit_exceeded, out_of_stock, ...)
	Name string `yaml:"name"`
	// Rate вероятность срабатывания на совпавший запрос, [0..1]
	Rate float64 `yaml:"rate"`
	// Endpoints паттерны путей: "*", точное значение или префикс с завершающей "*".
	// Пустой список равносилен ["*"]
	Endpoints []string `yaml:"endpoints"`
	// ErrorKind класс ошибки, попадает в поле error envelope-а
	ErrorKind string `yaml:"error"`
	// Message человекочитаемое описание отказа
	Message string `yaml:"message"`
	// StatusCode HTTP статус ответа при срабатывании
	StatusCode int `yaml:"status_code"`
}

// Matches сообщает, распространяется ли сценарий на endpoint.
// Паттерн "*" совпадает с любым путём; паттерн с завершающей "*" совпадает
// по префиксу (без звёздочки); остальные паттерны сравниваются точно
func (s Scenario) Matches(endpoint string) bool {
	if len(s.Endpoints) == 0 {
		return true
	}
	for _, p := range s.Endpoints {
		switch {
		case p == "*":
			return true
		case strings.HasSuffix(p, "*"):
			if strings.HasPrefix(endpoint, strings.TrimSuffix(p, "*")) {
				return true
			}
		case p == endpoint:
			return true
		}
	}
	return false
}

// Catalog отображает имя сервиса в его сценарии.
// Порядок сценариев в срезе значим: движок проверяет их в порядке объявления
type Catalog map[string][]Scenario
