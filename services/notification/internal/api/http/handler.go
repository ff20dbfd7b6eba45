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
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/notification/internal/service"
)

// Handler содержит HTTP-обработчики Notification Service
type Handler struct {
	notificationService *service.NotificationService
	engine              *errinject.Engine
	version             string
	logger              *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(notificationService *service.NotificationService, engine *errinject.Engine, version string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		notificationService: notificationService,
		engine:              engine,
		version:             version,
		logger:              logger,
	}
}

// NotificationDTO шаблонное уведомление в HTTP ответе
type NotificationDTO struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Template string  `json:"template"`
	Subject  string  `json:"subject"`
	Body     string  `json:"body"`
	Status   string  `json:"status"`
	SentAt   float64 `json:"sent_at"`
}

// SendResponse тело ответа POST /send
type SendResponse struct {
	Success      bool            `json:"success"`
	Service      string          `json:"service"`
	Notification NotificationDTO `json:"notification"`
}

// EmailRequest тело запроса POST /email
type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailDTO письмо в HTTP ответе
type EmailDTO struct {
	ID      string `json:"id"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Status  string `json:"status"`
}

// EmailResponse тело ответа POST /email
type EmailResponse struct {
	Success bool     `json:"success"`
	Service string   `json:"service"`
	Email   EmailDTO `json:"email"`
}

// PushRequest тело запроса POST /push
type PushRequest struct {
	UserKey string `json:"user_key"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

// PushDTO push-уведомление в HTTP ответе
type PushDTO struct {
	ID      string `json:"id"`
	UserKey string `json:"user_key"`
	Title   string `json:"title"`
	Status  string `json:"status"`
}

// PushResponse тело ответа POST /push
type PushResponse struct {
	Success bool    `json:"success"`
	Service string  `json:"service"`
	Push    PushDTO `json:"push"`
}

// SMSRequest тело запроса POST /sms
type SMSRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SMSDTO sms в HTTP ответе, номер замаскирован
type SMSDTO struct {
	ID     string `json:"id"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
}

// SMSResponse тело ответа POST /sms
type SMSResponse struct {
	Success bool   `json:"success"`
	Service string `json:"service"`
	SMS     SMSDTO `json:"sms"`
}

// TemplatesResponse тело ответа GET /templates
type TemplatesResponse struct {
	Success   bool     `json:"success"`
	Service   string   `json:"service"`
	Templates []string `json:"templates"`
}

// RootResponse тело ответа корневого эндпоинта
type RootResponse struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// Send обрабатывает POST /send - шаблонное уведомление.
// Тело запроса целиком служит данными шаблона, поля type, template
// и user дополнительно управляют доставкой
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.NotificationService, "/send"); ok {
		httperr.WriteInjection(w, topology.NotificationService, inj)
		return
	}

	var body map[string]any
	if err := decodeBody(r, &body); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.NotificationService, httperr.KindValidation, err.Error())
		return
	}

	notification, err := h.notificationService.Send(r.Context(), service.SendInput{
		Type:      stringField(body, "type"),
		Template:  stringField(body, "template"),
		Recipient: recipientEmail(body),
		Data:      body,
	})
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.NotificationService, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SendResponse{
		Success: true,
		Service: topology.NotificationService,
		Notification: NotificationDTO{
			ID:       notification.ID,
			Type:     notification.Type,
			Template: notification.Template,
			Subject:  notification.Subject,
			Body:     notification.Body,
			Status:   notification.Status,
			SentAt:   notification.SentAt,
		},
	})
}

// SendEmail обрабатывает POST /email - письмо с произвольным содержимым
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.NotificationService, "/email"); ok {
		httperr.WriteInjection(w, topology.NotificationService, inj)
		return
	}

	var req EmailRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.NotificationService, httperr.KindValidation, err.Error())
		return
	}

	email := h.notificationService.SendEmail(r.Context(), service.EmailInput{
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
	})

	writeJSON(w, http.StatusOK, EmailResponse{
		Success: true,
		Service: topology.NotificationService,
		Email: EmailDTO{
			ID:      email.ID,
			To:      email.To,
			Subject: email.Subject,
			Status:  email.Status,
		},
	})
}

// SendPush обрабатывает POST /push
func (h *Handler) SendPush(w http.ResponseWriter, r *http.Request) {
	var req PushRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.NotificationService, httperr.KindValidation, err.Error())
		return
	}

	push := h.notificationService.SendPush(r.Context(), service.PushInput{
		UserKey: req.UserKey,
		Title:   req.Title,
		Body:    req.Body,
	})

	writeJSON(w, http.StatusOK, PushResponse{
		Success: true,
		Service: topology.NotificationService,
		Push: PushDTO{
			ID:      push.ID,
			UserKey: push.UserKey,
			Title:   push.Title,
			Status:  push.Status,
		},
	})
}

// SendSMS обрабатывает POST /sms
func (h *Handler) SendSMS(w http.ResponseWriter, r *http.Request) {
	var req SMSRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.NotificationService, httperr.KindValidation, err.Error())
		return
	}

	sms := h.notificationService.SendSMS(r.Context(), service.SMSInput{
		Phone:   req.Phone,
		Message: req.Message,
	})

	writeJSON(w, http.StatusOK, SMSResponse{
		Success: true,
		Service: topology.NotificationService,
		SMS: SMSDTO{
			ID:     sms.ID,
			Phone:  sms.Phone,
			Status: sms.Status,
		},
	})
}

// Templates обрабатывает GET /templates - список доступных шаблонов
func (h *Handler) Templates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TemplatesResponse{
		Success:   true,
		Service:   topology.NotificationService,
		Templates: h.notificationService.Templates(),
	})
}

// Root обрабатывает корневой эндпоинт - краткая информация о сервисе
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Service:   topology.NotificationService,
		Version:   h.version,
		Endpoints: []string{"/health", "/send", "/email", "/push", "/sms", "/templates"},
	})
}

// stringField достаёт строковое поле из JSON тела
func stringField(body map[string]any, key string) string {
	value, _ := body[key].(string)
	return value
}

// recipientEmail достаёт email получателя из поля user для лога
func recipientEmail(body map[string]any) string {
	user, ok := body["user"].(map[string]any)
	if !ok {
		return ""
	}
	email, _ := user["email"].(string)
	return email
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
