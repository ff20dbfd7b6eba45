package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"

	"github.com/shestoi/GoShopSim/services/user/internal/repository"
	"github.com/shestoi/GoShopSim/services/user/internal/repository/memory"
	"github.com/shestoi/GoShopSim/services/user/internal/service/mocks"
)

// newService собирает сервис на реальном in-memory хранилище настроек:
// семантика merge проверяется на нём, а не на моках
func newService(t *testing.T) (*UserService, *memory.MemoryRepository, *mocks.AnalyticsClient, *mocks.NotificationClient) {
	t.Helper()
	repo := memory.NewMemoryRepository()
	mockAnalytics := mocks.NewAnalyticsClient(t)
	mockNotification := mocks.NewNotificationClient(t)
	svc := NewUserService(repo, mockAnalytics, mockNotification, zap.NewNop())
	return svc, repo, mockAnalytics, mockNotification
}

func callOK() downstream.Result {
	return downstream.Result{
		Kind:       downstream.Success,
		Payload:    map[string]any{"success": true},
		StatusCode: 200,
	}
}

func callUnavailable() downstream.Result {
	return downstream.Result{
		Kind:  downstream.TransportFailure,
		Cause: errors.New("connection refused"),
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUserService_GetProfile_KnownPersona(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{TraceParent: "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01"}

	// Arrange
	svc, _, mockAnalytics, _ := newService(t)
	mockAnalytics.On("TrackProfileViewed", ctx, tc, "usr_002").Return(callOK()).Once()

	// Act
	profile, err := svc.GetProfile(ctx, "usr_002", tc)

	// Assert
	require.NoError(t, err)
	want, _ := personas.ByKey("usr_002")
	require.Equal(t, want, profile.User)
	require.Equal(t, "2024-01-15T10:30:00Z", profile.CreatedAt)
	require.Equal(t, "2024-12-01T14:22:00Z", profile.LastLogin)
	require.Equal(t, repository.DefaultPreferences(), profile.Preferences)
}

func TestUserService_GetProfile_UnknownKeyFallsBackToRandomPersona(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{}

	// Arrange
	svc, _, mockAnalytics, _ := newService(t)
	// Событие трекается с запрошенным ключом, не с подменённым
	mockAnalytics.On("TrackProfileViewed", ctx, tc, "usr_999").Return(callOK()).Once()

	// Act
	profile, err := svc.GetProfile(ctx, "usr_999", tc)

	// Assert
	require.NoError(t, err)
	_, known := personas.ByKey(profile.User.Key)
	require.True(t, known)
}

func TestUserService_GetProfile_TrackFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{}

	// Arrange
	svc, _, mockAnalytics, _ := newService(t)
	mockAnalytics.On("TrackProfileViewed", ctx, tc, "usr_010").Return(callUnavailable()).Once()

	// Act
	profile, err := svc.GetProfile(ctx, "usr_010", tc)

	// Assert
	require.NoError(t, err)
	require.Equal(t, "usr_010", profile.User.Key)
}

func TestUserService_GetProfile_ReflectsStoredPreferences(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{}

	// Arrange
	svc, repo, mockAnalytics, _ := newService(t)
	_, err := repo.Update(ctx, "usr_005", repository.PreferencesPatch{
		Theme: strPtr("light"),
	})
	require.NoError(t, err)

	mockAnalytics.On("TrackProfileViewed", ctx, tc, "usr_005").Return(callOK()).Once()

	// Act
	profile, err := svc.GetProfile(ctx, "usr_005", tc)

	// Assert
	require.NoError(t, err)
	require.Equal(t, "light", profile.Preferences.Theme)
}

func TestUserService_UpdateProfile_TracksAndNotifies(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{}

	// Arrange
	svc, _, mockAnalytics, mockNotification := newService(t)
	mockAnalytics.On("TrackProfileUpdated", ctx, tc, "usr_013", []string{"email", "name"}).
		Return(callOK()).Once()
	mockNotification.On("SendProfileUpdated", ctx, tc, "usr_013").Return(callOK()).Once()

	// Act
	svc.UpdateProfile(ctx, "usr_013", []string{"email", "name"}, tc)
}

func TestUserService_UpdateProfile_SideCallFailuresAreNotFatal(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{}

	// Arrange
	svc, _, mockAnalytics, mockNotification := newService(t)
	mockAnalytics.On("TrackProfileUpdated", ctx, tc, "usr_013", []string{"name"}).
		Return(callUnavailable()).Once()
	mockNotification.On("SendProfileUpdated", ctx, tc, "usr_013").Return(callUnavailable()).Once()

	// Act: оба побочных вызова упали, паники и ошибки нет
	svc.UpdateProfile(ctx, "usr_013", []string{"name"}, tc)
}

func TestUserService_GetPreferences_DefaultsWhenUnset(t *testing.T) {
	// Arrange
	svc, _, _, _ := newService(t)

	// Act
	prefs, err := svc.GetPreferences(context.Background(), "usr_001")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "dark", prefs.Theme)
	require.True(t, prefs.Notifications.Email)
	require.True(t, prefs.Notifications.Push)
	require.False(t, prefs.Notifications.SMS)
	require.Equal(t, "en", prefs.Language)
	require.Equal(t, "America/New_York", prefs.Timezone)
}

func TestUserService_UpdatePreferences_MergesIntoStore(t *testing.T) {
	ctx := context.Background()

	// Arrange
	svc, _, _, _ := newService(t)

	// Act
	updated, err := svc.UpdatePreferences(ctx, "usr_003", repository.PreferencesPatch{
		Theme: strPtr("light"),
		Notifications: &repository.NotificationChannelsPatch{
			Push: boolPtr(false),
		},
	})

	// Assert: тронутые поля изменились, остальные сохранили дефолты
	require.NoError(t, err)
	require.Equal(t, "light", updated.Theme)
	require.False(t, updated.Notifications.Push)
	require.True(t, updated.Notifications.Email)
	require.Equal(t, "America/New_York", updated.Timezone)

	stored, err := svc.GetPreferences(ctx, "usr_003")
	require.NoError(t, err)
	require.Equal(t, updated, stored)

	// Настройки других пользователей не затронуты
	other, err := svc.GetPreferences(ctx, "usr_004")
	require.NoError(t, err)
	require.Equal(t, repository.DefaultPreferences(), other)
}

func TestUserService_UpdatePreferences_SequentialPatchesAccumulate(t *testing.T) {
	ctx := context.Background()

	// Arrange
	svc, _, _, _ := newService(t)

	// Act
	_, err := svc.UpdatePreferences(ctx, "usr_008", repository.PreferencesPatch{
		Theme: strPtr("light"),
	})
	require.NoError(t, err)
	final, err := svc.UpdatePreferences(ctx, "usr_008", repository.PreferencesPatch{
		Timezone: strPtr("Europe/Berlin"),
	})

	// Assert
	require.NoError(t, err)
	require.Equal(t, "light", final.Theme)
	require.Equal(t, "Europe/Berlin", final.Timezone)
}

func TestUserService_CurrentProfile_ReturnsKnownPersona(t *testing.T) {
	// Arrange
	svc, _, _, _ := newService(t)

	// Act
	user := svc.CurrentProfile(context.Background())

	// Assert
	_, known := personas.ByKey(user.Key)
	require.True(t, known)
}
