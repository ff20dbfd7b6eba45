// Package topology описывает реестр сервисов демо-стека: какие сервисы
// существуют, на каких портах живут и кого объявляют своими downstream.
// Реестр read-only после создания, его можно читать из любых горутин.
package topology

import (
	"errors"
	"fmt"
	"sort"
)

// EnvDocker включает адресацию по имени сервиса (http://<name>:<port>).
// Любое другое значение окружения даёт адреса на localhost
const EnvDocker = "docker"

// ErrUnknownService возвращается при попытке разрешить адрес сервиса,
// которого нет в реестре
var ErrUnknownService = errors.New("unknown service")

// Service описывает один сервис стека
type Service struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
	// Downstream — декларация зависимостей для документации и дашбордов.
	// На маршрутизацию не влияет: вызывать можно любой сервис реестра
	Downstream []string `yaml:"downstream"`
}

// Registry отображает имя сервиса в его адрес и декларированные зависимости
type Registry struct {
	env      string
	services map[string]Service
}

// New создаёт реестр из списка сервисов.
// env определяет схему адресации (см. EnvDocker)
func New(env string, services []Service) *Registry {
	m := make(map[string]Service, len(services))
	for _, s := range services {
		m[s.Name] = s
	}
	return &Registry{env: env, services: m}
}

// Resolve возвращает базовый URL сервиса по имени.
// Для неизвестного имени возвращает ошибку, оборачивающую ErrUnknownService
func (r *Registry) Resolve(name string) (string, error) {
	svc, ok := r.services[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownService, name)
	}
	host := "localhost"
	if r.env == EnvDocker {
		host = svc.Name
	}
	return fmt.Sprintf("http://%s:%d", host, svc.Port), nil
}

// Downstream возвращает копию декларированных зависимостей сервиса.
// Для неизвестного имени возвращает nil
func (r *Registry) Downstream(name string) []string {
	svc, ok := r.services[name]
	if !ok || len(svc.Downstream) == 0 {
		return nil
	}
	out := make([]string, len(svc.Downstream))
	copy(out, svc.Downstream)
	return out
}

// Names возвращает отсортированный список имён всех сервисов реестра
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.services))
	for name := range r.services {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
