package repository

import (
	"context"
)

// Preferences настройки пользователя
type Preferences struct {
	Theme         string
	Notifications NotificationChannels
	Language      string
	Timezone      string
}

// NotificationChannels каналы уведомлений пользователя
type NotificationChannels struct {
	Email bool
	Push  bool
	SMS   bool
}

// PreferencesPatch частичное обновление настроек.
// nil поле означает "не менять"
type PreferencesPatch struct {
	Theme         *string
	Notifications *NotificationChannelsPatch
	Language      *string
	Timezone      *string
}

// NotificationChannelsPatch частичное обновление каналов уведомлений
type NotificationChannelsPatch struct {
	Email *bool
	Push  *bool
	SMS   *bool
}

// DefaultPreferences настройки пользователя, который их ни разу не менял
func DefaultPreferences() Preferences {
	return Preferences{
		Theme: "dark",
		Notifications: NotificationChannels{
			Email: true,
			Push:  true,
			SMS:   false,
		},
		Language: "en",
		Timezone: "America/New_York",
	}
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=PreferencesRepository --dir=. --output=./mocks --outpkg=mocks

// PreferencesRepository определяет интерфейс хранилища настроек пользователей.
// Get для пользователя без сохранённых настроек возвращает дефолтные
type PreferencesRepository interface {
	// Get возвращает настройки пользователя
	Get(ctx context.Context, userKey string) (Preferences, error)
	// Update применяет частичное обновление и возвращает итоговые настройки
	Update(ctx context.Context, userKey string, patch PreferencesPatch) (Preferences, error)
}
