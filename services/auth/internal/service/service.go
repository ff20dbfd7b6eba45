package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"
)

// tokenTTL время жизни сессионного токена в секундах
const tokenTTL = 3600

// AuthService содержит бизнес-логику аутентификации.
// Базы пользователей нет: любой вход с известной персоной успешен,
// валидность токена определяется его длиной
type AuthService struct {
	analytics AnalyticsClient
	logger    *zap.Logger
}

// NewAuthService создаёт новый экземпляр AuthService
func NewAuthService(analytics AnalyticsClient, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		analytics: analytics,
		logger:    logger,
	}
}

// LoginInput содержит входные данные входа.
// Пустой User дозаполняется случайной персоной
type LoginInput struct {
	User  personas.Persona
	Trace observability.TraceContext
}

// Session выданная сессия
type Session struct {
	User      personas.Persona
	Token     string
	ExpiresIn int
}

// TokenValidation итог проверки токена. UserKey пуст для невалидного токена
type TokenValidation struct {
	Valid   bool
	UserKey string
}

// RefreshedToken новый токен взамен истёкшего
type RefreshedToken struct {
	Token     string
	ExpiresIn int
}

// Login аутентифицирует пользователя и выдаёт сессионный токен.
// Событие входа уходит в analytics некритическим вызовом: отказ
// трекинга вход не ломает
func (s *AuthService) Login(ctx context.Context, input LoginInput) Session {
	log := observability.L(ctx, s.logger)

	user := input.User
	if user == (personas.Persona{}) {
		user = personas.Random()
	}

	// Имитация проверки учётных данных
	simulateWork(ctx, 200*time.Millisecond)

	token := uuid.NewString()

	log.Info("User authenticated successfully",
		zap.String("user_key", user.Key),
		zap.String("user_email", user.Email),
		zap.String("auth_method", "password"))

	if res := s.analytics.TrackLogin(ctx, input.Trace, user); res.Failed() {
		log.Warn("Failed to track login event",
			zap.String("error_kind", res.ErrorKind),
			zap.Error(res.Cause))
	}

	return Session{
		User:      user,
		Token:     token,
		ExpiresIn: tokenTTL,
	}
}

// ValidateToken проверяет сессионный токен.
// Проверка номинальная: валиден любой токен длиннее десяти символов
func (s *AuthService) ValidateToken(ctx context.Context, token string) TokenValidation {
	log := observability.L(ctx, s.logger)

	simulateWork(ctx, 50*time.Millisecond)

	valid := len(token) > 10
	if valid {
		log.Info("Token validation: valid", zap.Bool("token_valid", true))
		return TokenValidation{Valid: true, UserKey: "usr_001"}
	}

	log.Warn("Token validation: invalid", zap.Bool("token_valid", false))
	return TokenValidation{Valid: false}
}

// Refresh выдаёт новый токен. Старый токен не проверяется и не отзывается
func (s *AuthService) Refresh(ctx context.Context) RefreshedToken {
	log := observability.L(ctx, s.logger)

	simulateWork(ctx, 100*time.Millisecond)

	log.Info("Token refreshed successfully")
	return RefreshedToken{
		Token:     uuid.NewString(),
		ExpiresIn: tokenTTL,
	}
}

// Logout завершает сессию пользователя. Хранимых сессий нет, поэтому
// операция сводится к логу и событию в analytics, исход которого не важен
func (s *AuthService) Logout(ctx context.Context, userKey string, tc observability.TraceContext) {
	log := observability.L(ctx, s.logger)

	if userKey == "" {
		userKey = "unknown"
	}

	log.Info("User logged out", zap.String("user_key", userKey))

	_ = s.analytics.TrackLogout(ctx, tc, userKey)
}

// simulateWork имитирует полезную работу, уважая отмену контекста
func simulateWork(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
