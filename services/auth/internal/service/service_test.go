package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"

	"github.com/shestoi/GoShopSim/services/auth/internal/service/mocks"
)

func trackOK() downstream.Result {
	return downstream.Result{
		Kind:       downstream.Success,
		Payload:    map[string]any{"success": true},
		StatusCode: 200,
	}
}

func trackUnavailable() downstream.Result {
	return downstream.Result{
		Kind:  downstream.TransportFailure,
		Cause: errors.New("connection refused"),
	}
}

func TestAuthService_Login_IssuesSessionToken(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{TraceParent: "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01"}
	user := personas.All[4]

	// Arrange
	mockAnalytics := mocks.NewAnalyticsClient(t)
	svc := NewAuthService(mockAnalytics, zap.NewNop())

	mockAnalytics.On("TrackLogin", ctx, tc, user).Return(trackOK()).Once()

	// Act
	session := svc.Login(ctx, LoginInput{User: user, Trace: tc})

	// Assert
	require.Equal(t, user, session.User)
	require.Equal(t, 3600, session.ExpiresIn)
	_, err := uuid.Parse(session.Token)
	require.NoError(t, err)
}

func TestAuthService_Login_RandomPersonaWhenAbsent(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{}

	// Arrange
	mockAnalytics := mocks.NewAnalyticsClient(t)
	svc := NewAuthService(mockAnalytics, zap.NewNop())

	mockAnalytics.On("TrackLogin", ctx, tc,
		mock.MatchedBy(func(user personas.Persona) bool {
			_, known := personas.ByKey(user.Key)
			return known
		}),
	).Return(trackOK()).Once()

	// Act
	session := svc.Login(ctx, LoginInput{Trace: tc})

	// Assert: дозаполненная персона та же, что ушла в analytics
	_, known := personas.ByKey(session.User.Key)
	require.True(t, known)
}

func TestAuthService_Login_TrackFailureDoesNotFailLogin(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{}
	user := personas.All[9]

	// Arrange
	mockAnalytics := mocks.NewAnalyticsClient(t)
	svc := NewAuthService(mockAnalytics, zap.NewNop())

	mockAnalytics.On("TrackLogin", ctx, tc, user).Return(trackUnavailable()).Once()

	// Act
	session := svc.Login(ctx, LoginInput{User: user, Trace: tc})

	// Assert
	require.NotEmpty(t, session.Token)
	require.Equal(t, 3600, session.ExpiresIn)
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := NewAuthService(mocks.NewAnalyticsClient(t), zap.NewNop())

	t.Run("long token is valid", func(t *testing.T) {
		result := svc.ValidateToken(context.Background(), uuid.NewString())

		require.True(t, result.Valid)
		require.Equal(t, "usr_001", result.UserKey)
	})

	t.Run("short token is invalid", func(t *testing.T) {
		result := svc.ValidateToken(context.Background(), "tok123")

		require.False(t, result.Valid)
		require.Empty(t, result.UserKey)
	})

	t.Run("empty token is invalid", func(t *testing.T) {
		result := svc.ValidateToken(context.Background(), "")

		require.False(t, result.Valid)
		require.Empty(t, result.UserKey)
	})
}

func TestAuthService_Refresh_IssuesNewToken(t *testing.T) {
	// Arrange
	svc := NewAuthService(mocks.NewAnalyticsClient(t), zap.NewNop())

	// Act
	first := svc.Refresh(context.Background())
	second := svc.Refresh(context.Background())

	// Assert
	_, err := uuid.Parse(first.Token)
	require.NoError(t, err)
	require.Equal(t, 3600, first.ExpiresIn)
	require.NotEqual(t, first.Token, second.Token)
}

func TestAuthService_Logout_TracksEvent(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{}

	// Arrange
	mockAnalytics := mocks.NewAnalyticsClient(t)
	svc := NewAuthService(mockAnalytics, zap.NewNop())

	mockAnalytics.On("TrackLogout", ctx, tc, "usr_004").Return(trackOK()).Once()

	// Act
	svc.Logout(ctx, "usr_004", tc)
}

func TestAuthService_Logout_UnknownUserAndDeadAnalytics(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{}

	// Arrange
	mockAnalytics := mocks.NewAnalyticsClient(t)
	svc := NewAuthService(mockAnalytics, zap.NewNop())

	// Пустой user_key нормализуется, отказ analytics игнорируется
	mockAnalytics.On("TrackLogout", ctx, tc, "unknown").Return(trackUnavailable()).Once()

	// Act
	svc.Logout(ctx, "", tc)
}
