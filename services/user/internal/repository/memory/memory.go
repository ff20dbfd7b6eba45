package memory

import (
	"context"
	"sync"

	"github.com/shestoi/GoShopSim/services/user/internal/repository"
)

// MemoryRepository реализует repository.PreferencesRepository в памяти.
// Настройки заводятся лениво: до первого Update пользователь видит дефолты
type MemoryRepository struct {
	mu          sync.RWMutex
	preferences map[string]repository.Preferences
}

// NewMemoryRepository создаёт новый пустой репозиторий
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		preferences: make(map[string]repository.Preferences),
	}
}

// Get возвращает настройки пользователя
func (r *MemoryRepository) Get(_ context.Context, userKey string) (repository.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if prefs, ok := r.preferences[userKey]; ok {
		return prefs, nil
	}
	return repository.DefaultPreferences(), nil
}

// Update применяет частичное обновление и возвращает итоговые настройки
func (r *MemoryRepository) Update(_ context.Context, userKey string, patch repository.PreferencesPatch) (repository.Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefs, ok := r.preferences[userKey]
	if !ok {
		prefs = repository.DefaultPreferences()
	}

	if patch.Theme != nil {
		prefs.Theme = *patch.Theme
	}
	if patch.Language != nil {
		prefs.Language = *patch.Language
	}
	if patch.Timezone != nil {
		prefs.Timezone = *patch.Timezone
	}
	if patch.Notifications != nil {
		if patch.Notifications.Email != nil {
			prefs.Notifications.Email = *patch.Notifications.Email
		}
		if patch.Notifications.Push != nil {
			prefs.Notifications.Push = *patch.Notifications.Push
		}
		if patch.Notifications.SMS != nil {
			prefs.Notifications.SMS = *patch.Notifications.SMS
		}
	}

	r.preferences[userKey] = prefs
	return prefs, nil
}
