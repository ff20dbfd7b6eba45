package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/errinject"
	"github.com/shestoi/GoShopSim/platform/httperr"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/user/internal/repository"
	"github.com/shestoi/GoShopSim/services/user/internal/service"
)

// Handler содержит HTTP-обработчики User Service
type Handler struct {
	userService *service.UserService
	engine      *errinject.Engine
	version     string
	logger      *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(userService *service.UserService, engine *errinject.Engine, version string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		userService: userService,
		engine:      engine,
		version:     version,
		logger:      logger,
	}
}

// ProfilePreferencesDTO сокращённые настройки внутри профиля.
// Notifications схлопнуты в один флаг: включён хотя бы один канал
type ProfilePreferencesDTO struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language"`
}

// UserDTO профиль пользователя в HTTP ответе
type UserDTO struct {
	Key         string                `json:"key"`
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	CreatedAt   string                `json:"created_at"`
	LastLogin   string                `json:"last_login"`
	Preferences ProfilePreferencesDTO `json:"preferences"`
}

// ProfileResponse тело ответа GET /users/{id}
type ProfileResponse struct {
	Success bool    `json:"success"`
	Service string  `json:"service"`
	User    UserDTO `json:"user"`
}

// UpdateResponse тело ответа PUT /users/{id}
type UpdateResponse struct {
	Success bool   `json:"success"`
	Service string `json:"service"`
	Message string `json:"message"`
	UserKey string `json:"user_key"`
}

// NotificationChannelsDTO каналы уведомлений в HTTP запросе/ответе
type NotificationChannelsDTO struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	SMS   bool `json:"sms"`
}

// PreferencesDTO настройки пользователя в HTTP ответе
type PreferencesDTO struct {
	Theme         string                  `json:"theme"`
	Notifications NotificationChannelsDTO `json:"notifications"`
	Language      string                  `json:"language"`
	Timezone      string                  `json:"timezone"`
}

// PreferencesResponse тело ответа GET /users/{id}/preferences
type PreferencesResponse struct {
	Success     bool           `json:"success"`
	Service     string         `json:"service"`
	Preferences PreferencesDTO `json:"preferences"`
}

// PreferencesPatchRequest тело PUT /users/{id}/preferences.
// Отсутствующие поля не меняются
type PreferencesPatchRequest struct {
	Theme         *string                       `json:"theme"`
	Notifications *NotificationChannelsPatchDTO `json:"notifications"`
	Language      *string                       `json:"language"`
	Timezone      *string                       `json:"timezone"`
}

// NotificationChannelsPatchDTO частичное обновление каналов уведомлений
type NotificationChannelsPatchDTO struct {
	Email *bool `json:"email"`
	Push  *bool `json:"push"`
	SMS   *bool `json:"sms"`
}

// MessageResponse тело ответа без полезной нагрузки
type MessageResponse struct {
	Success bool   `json:"success"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// CurrentProfileResponse тело ответа GET /profile
type CurrentProfileResponse struct {
	Success bool             `json:"success"`
	Service string           `json:"service"`
	User    personas.Persona `json:"user"`
}

// RootResponse карточка сервиса для GET /
type RootResponse struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// GetProfile обрабатывает GET /users/{id} - профиль пользователя
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request, userID string) {
	if inj, ok := h.engine.Evaluate(topology.UserService, "/users"); ok {
		httperr.WriteInjection(w, topology.UserService, inj)
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID, observability.TraceContextFromHeaders(r.Header))
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.UserService, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{
		Success: true,
		Service: topology.UserService,
		User:    userDTO(profile),
	})
}

// UpdateProfile обрабатывает PUT /users/{id} - обновление профиля
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request, userID string) {
	if inj, ok := h.engine.Evaluate(topology.UserService, "/users"); ok {
		httperr.WriteInjection(w, topology.UserService, inj)
		return
	}

	var body map[string]any
	if err := decodeBody(r, &body); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.UserService, httperr.KindValidation, err.Error())
		return
	}

	h.userService.UpdateProfile(r.Context(), userID, fieldNames(body), observability.TraceContextFromHeaders(r.Header))

	writeJSON(w, http.StatusOK, UpdateResponse{
		Success: true,
		Service: topology.UserService,
		Message: "Profile updated successfully",
		UserKey: userID,
	})
}

// GetPreferences обрабатывает GET /users/{id}/preferences
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request, userID string) {
	if inj, ok := h.engine.Evaluate(topology.UserService, "/users"); ok {
		httperr.WriteInjection(w, topology.UserService, inj)
		return
	}

	prefs, err := h.userService.GetPreferences(r.Context(), userID)
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.UserService, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, PreferencesResponse{
		Success:     true,
		Service:     topology.UserService,
		Preferences: preferencesDTO(prefs),
	})
}

// UpdatePreferences обрабатывает PUT /users/{id}/preferences
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request, userID string) {
	if inj, ok := h.engine.Evaluate(topology.UserService, "/users"); ok {
		httperr.WriteInjection(w, topology.UserService, inj)
		return
	}

	var req PreferencesPatchRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.UserService, httperr.KindValidation, err.Error())
		return
	}

	if _, err := h.userService.UpdatePreferences(r.Context(), userID, patchFromRequest(req)); err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.UserService, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Service: topology.UserService,
		Message: "Preferences updated",
	})
}

// CurrentProfile обрабатывает GET /profile - профиль текущей сессии
func (h *Handler) CurrentProfile(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.UserService, "/profile"); ok {
		httperr.WriteInjection(w, topology.UserService, inj)
		return
	}

	user := h.userService.CurrentProfile(r.Context())

	writeJSON(w, http.StatusOK, CurrentProfileResponse{
		Success: true,
		Service: topology.UserService,
		User:    user,
	})
}

// Root обрабатывает GET / - карточка сервиса
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Service:   topology.UserService,
		Version:   h.version,
		Endpoints: []string{"/health", "/users/{id}", "/users/{id}/preferences", "/profile"},
	})
}

// userDTO преобразует доменный профиль в HTTP DTO
func userDTO(profile service.Profile) UserDTO {
	prefs := profile.Preferences
	return UserDTO{
		Key:       profile.User.Key,
		Name:      profile.User.Name,
		Email:     profile.User.Email,
		CreatedAt: profile.CreatedAt,
		LastLogin: profile.LastLogin,
		Preferences: ProfilePreferencesDTO{
			Theme:         prefs.Theme,
			Notifications: prefs.Notifications.Email || prefs.Notifications.Push || prefs.Notifications.SMS,
			Language:      prefs.Language,
		},
	}
}

// preferencesDTO преобразует доменные настройки в HTTP DTO
func preferencesDTO(prefs repository.Preferences) PreferencesDTO {
	return PreferencesDTO{
		Theme: prefs.Theme,
		Notifications: NotificationChannelsDTO{
			Email: prefs.Notifications.Email,
			Push:  prefs.Notifications.Push,
			SMS:   prefs.Notifications.SMS,
		},
		Language: prefs.Language,
		Timezone: prefs.Timezone,
	}
}

// patchFromRequest преобразует HTTP DTO в патч хранилища
func patchFromRequest(req PreferencesPatchRequest) repository.PreferencesPatch {
	patch := repository.PreferencesPatch{
		Theme:    req.Theme,
		Language: req.Language,
		Timezone: req.Timezone,
	}
	if req.Notifications != nil {
		patch.Notifications = &repository.NotificationChannelsPatch{
			Email: req.Notifications.Email,
			Push:  req.Notifications.Push,
			SMS:   req.Notifications.SMS,
		}
	}
	return patch
}

// fieldNames возвращает отсортированные имена полей запроса.
// Порядок ключей map недетерминирован
func fieldNames(body map[string]any) []string {
	fields := make([]string, 0, len(body))
	for name := range body {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
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
