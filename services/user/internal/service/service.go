package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"

	"github.com/shestoi/GoShopSim/services/user/internal/repository"
)

// Фиксированные даты жизненного цикла демо-профиля
const (
	profileCreatedAt = "2024-01-15T10:30:00Z"
	profileLastLogin = "2024-12-01T14:22:00Z"
)

// UserService содержит бизнес-логику профилей пользователей.
// Сами пользователи это общий набор персон, изменяемое состояние
// только у настроек
type UserService struct {
	prefsRepo    repository.PreferencesRepository
	analytics    AnalyticsClient
	notification NotificationClient
	logger       *zap.Logger
}

// NewUserService создаёт новый экземпляр UserService
func NewUserService(
	prefsRepo repository.PreferencesRepository,
	analytics AnalyticsClient,
	notification NotificationClient,
	logger *zap.Logger,
) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		prefsRepo:    prefsRepo,
		analytics:    analytics,
		notification: notification,
		logger:       logger,
	}
}

// Profile профиль пользователя: персона плюс производные поля
type Profile struct {
	User        personas.Persona
	CreatedAt   string
	LastLogin   string
	Preferences repository.Preferences
}

// GetProfile возвращает профиль пользователя. Неизвестный ключ не ошибка:
// витрина отдаёт случайную персону. Событие просмотра уходит в analytics,
// его исход не важен
func (s *UserService) GetProfile(ctx context.Context, userKey string, tc observability.TraceContext) (Profile, error) {
	log := observability.L(ctx, s.logger)

	// Имитация похода в базу
	simulateWork(ctx, 150*time.Millisecond)

	user, ok := personas.ByKey(userKey)
	if !ok {
		user = personas.Random()
	}

	prefs, err := s.prefsRepo.Get(ctx, user.Key)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to load preferences: %w", err)
	}

	log.Info("Retrieved user profile",
		zap.String("user_key", user.Key),
		zap.String("user_email", user.Email))

	_ = s.analytics.TrackProfileViewed(ctx, tc, userKey)

	return Profile{
		User:        user,
		CreatedAt:   profileCreatedAt,
		LastLogin:   profileLastLogin,
		Preferences: prefs,
	}, nil
}

// UpdateProfile фиксирует обновление профиля. Хранимых полей профиля нет,
// поэтому операция сводится к логу и двум некритическим вызовам:
// событию в analytics и письму через notification
func (s *UserService) UpdateProfile(ctx context.Context, userKey string, fields []string, tc observability.TraceContext) {
	log := observability.L(ctx, s.logger)

	// Имитация обновления в базе
	simulateWork(ctx, 200*time.Millisecond)

	log.Info("Updated user profile",
		zap.String("user_key", userKey),
		zap.Strings("updated_fields", fields))

	_ = s.analytics.TrackProfileUpdated(ctx, tc, userKey, fields)

	if res := s.notification.SendProfileUpdated(ctx, tc, userKey); res.Failed() {
		log.Warn("Failed to send profile update notification",
			zap.String("user_key", userKey),
			zap.String("error_kind", res.ErrorKind),
			zap.Error(res.Cause))
	}
}

// GetPreferences возвращает настройки пользователя
func (s *UserService) GetPreferences(ctx context.Context, userKey string) (repository.Preferences, error) {
	simulateWork(ctx, 100*time.Millisecond)

	return s.prefsRepo.Get(ctx, userKey)
}

// UpdatePreferences применяет частичное обновление настроек
func (s *UserService) UpdatePreferences(ctx context.Context, userKey string, patch repository.PreferencesPatch) (repository.Preferences, error) {
	log := observability.L(ctx, s.logger)

	simulateWork(ctx, 150*time.Millisecond)

	prefs, err := s.prefsRepo.Update(ctx, userKey, patch)
	if err != nil {
		return repository.Preferences{}, fmt.Errorf("failed to update preferences: %w", err)
	}

	log.Info("Updated user preferences", zap.String("user_key", userKey))
	return prefs, nil
}

// CurrentProfile возвращает профиль текущей сессии.
// Сессий нет, текущим считается случайный пользователь
func (s *UserService) CurrentProfile(ctx context.Context) personas.Persona {
	simulateWork(ctx, 100*time.Millisecond)

	return personas.Random()
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
