// Package httperr реализует единый формат ошибок HTTP API.
// Все сервисы стека отвечают на отказ одним и тем же envelope-ом,
// чтобы вызывающая сторона могла отличить инъецированную ошибку
// от настоящей транспортной
package httperr

import (
	"encoding/json"
	"net/http"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/errinject"
)

// Общие классы ошибок, не привязанные к сценариям каталога
const (
	// KindDownstreamUnavailable транспортный отказ при вызове соседнего сервиса
	KindDownstreamUnavailable = "DownstreamUnavailableError"
	// KindValidation некорректное тело или параметры запроса
	KindValidation = "ValidationError"
)

// Envelope тело ответа-ошибки
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Service string `json:"service"`
}

// Write пишет envelope с указанным статусом
func Write(w http.ResponseWriter, status int, service, errorKind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{
		Success: false,
		Error:   errorKind,
		Message: message,
		Service: service,
	})
}

// WriteInjection пишет envelope сработавшего сценария со статусом сценария
func WriteInjection(w http.ResponseWriter, service string, inj errinject.Injection) {
	Write(w, inj.StatusCode, service, inj.ErrorKind, inj.Message)
}

// WriteDownstream пишет отказ вызова downstream-сервиса.
// Инъецированный отказ пробрасывается как есть: статус и envelope
// сервиса-источника доходят до вызывающей стороны без искажений.
// Транспортный отказ превращается в 502 от имени service
func WriteDownstream(w http.ResponseWriter, service string, res downstream.Result) {
	if res.Kind == downstream.InjectedFailure {
		Write(w, res.StatusCode, res.Service, res.ErrorKind, res.Message)
		return
	}

	msg := "downstream call failed"
	if res.Cause != nil {
		msg = res.Cause.Error()
	}
	Write(w, http.StatusBadGateway, service, KindDownstreamUnavailable, msg)
}
