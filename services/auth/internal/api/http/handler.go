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
	"github.com/shestoi/GoShopSim/platform/personas"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/auth/internal/service"
)

// Handler содержит HTTP-обработчики Auth Service
type Handler struct {
	authService *service.AuthService
	engine      *errinject.Engine
	version     string
	logger      *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(authService *service.AuthService, engine *errinject.Engine, version string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		authService: authService,
		engine:      engine,
		version:     version,
		logger:      logger,
	}
}

// LoginRequest тело POST /login. Поле user опционально:
// демо-стенд подставляет случайную персону
type LoginRequest struct {
	User *personas.Persona `json:"user"`
}

// LoginResponse тело успешного ответа POST /login
type LoginResponse struct {
	Success   bool             `json:"success"`
	Service   string           `json:"service"`
	User      personas.Persona `json:"user"`
	Token     string           `json:"token"`
	ExpiresIn int              `json:"expires_in"`
}

// ValidateRequest тело POST /validate
type ValidateRequest struct {
	Token string `json:"token"`
}

// ValidateResponse тело ответа POST /validate.
// UserKey null для невалидного токена
type ValidateResponse struct {
	Success bool    `json:"success"`
	Service string  `json:"service"`
	Valid   bool    `json:"valid"`
	UserKey *string `json:"user_key"`
}

// RefreshRequest тело POST /refresh. Старый токен принимается,
// но не проверяется
type RefreshRequest struct {
	Token string `json:"token"`
}

// RefreshResponse тело ответа POST /refresh
type RefreshResponse struct {
	Success   bool   `json:"success"`
	Service   string `json:"service"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// LogoutRequest тело POST /logout
type LogoutRequest struct {
	UserKey string `json:"user_key"`
}

// LogoutResponse тело ответа POST /logout
type LogoutResponse struct {
	Success bool   `json:"success"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// RootResponse карточка сервиса для GET /
type RootResponse struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// Login обрабатывает POST /login - вход и выдача токена
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.AuthService, "/login"); ok {
		httperr.WriteInjection(w, topology.AuthService, inj)
		return
	}

	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.AuthService, httperr.KindValidation, err.Error())
		return
	}

	input := service.LoginInput{
		Trace: observability.TraceContextFromHeaders(r.Header),
	}
	if req.User != nil {
		input.User = *req.User
	}

	session := h.authService.Login(r.Context(), input)

	writeJSON(w, http.StatusOK, LoginResponse{
		Success:   true,
		Service:   topology.AuthService,
		User:      session.User,
		Token:     session.Token,
		ExpiresIn: session.ExpiresIn,
	})
}

// Validate обрабатывает POST /validate - проверка токена
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.AuthService, "/validate"); ok {
		httperr.WriteInjection(w, topology.AuthService, inj)
		return
	}

	var req ValidateRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.AuthService, httperr.KindValidation, err.Error())
		return
	}

	result := h.authService.ValidateToken(r.Context(), req.Token)

	resp := ValidateResponse{
		Success: true,
		Service: topology.AuthService,
		Valid:   result.Valid,
	}
	if result.Valid {
		resp.UserKey = &result.UserKey
	}
	writeJSON(w, http.StatusOK, resp)
}

// Refresh обрабатывает POST /refresh - выдача нового токена
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.AuthService, "/refresh"); ok {
		httperr.WriteInjection(w, topology.AuthService, inj)
		return
	}

	var req RefreshRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.AuthService, httperr.KindValidation, err.Error())
		return
	}

	refreshed := h.authService.Refresh(r.Context())

	writeJSON(w, http.StatusOK, RefreshResponse{
		Success:   true,
		Service:   topology.AuthService,
		Token:     refreshed.Token,
		ExpiresIn: refreshed.ExpiresIn,
	})
}

// Logout обрабатывает POST /logout - завершение сессии
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.AuthService, httperr.KindValidation, err.Error())
		return
	}

	h.authService.Logout(r.Context(), req.UserKey, observability.TraceContextFromHeaders(r.Header))

	writeJSON(w, http.StatusOK, LogoutResponse{
		Success: true,
		Service: topology.AuthService,
		Message: "Logged out successfully",
	})
}

// Root обрабатывает GET / - карточка сервиса
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Service:   topology.AuthService,
		Version:   h.version,
		Endpoints: []string{"/health", "/login", "/validate", "/refresh", "/logout"},
	})
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
