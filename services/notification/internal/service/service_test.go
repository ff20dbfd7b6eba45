package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/services/notification/internal/templates"
)

func newService(t *testing.T) *NotificationService {
	t.Helper()
	renderer, err := templates.NewRenderer(zap.NewNop())
	require.NoError(t, err)
	return NewNotificationService(renderer, zap.NewNop())
}

func TestNotificationService_Send_RendersTemplateData(t *testing.T) {
	// Arrange
	svc := newService(t)
	ctx := context.Background()

	// Act
	notification, err := svc.Send(ctx, SendInput{
		Type:      "email",
		Template:  "order_confirmation",
		Recipient: "alice.chen@example.com",
		Data:      map[string]any{"order_id": "ord_42", "total": 109.98},
	})

	// Assert
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(notification.ID, "ntf_"), "notification id, got %s", notification.ID)
	require.Len(t, notification.ID, len("ntf_")+12)
	require.Equal(t, "email", notification.Type)
	require.Equal(t, "order_confirmation", notification.Template)
	require.Equal(t, "Order Confirmation - #ord_42", notification.Subject)
	require.Equal(t, "Thank you for your order! Your order #ord_42 has been confirmed.", notification.Body)
	require.Equal(t, "sent", notification.Status)
	require.Greater(t, notification.SentAt, 0.0)
}

func TestNotificationService_Send_DefaultsToWelcomeEmail(t *testing.T) {
	// Arrange
	svc := newService(t)

	// Act
	notification, err := svc.Send(context.Background(), SendInput{})

	// Assert
	require.NoError(t, err)
	require.Equal(t, "email", notification.Type)
	require.Equal(t, "welcome", notification.Template)
	require.Equal(t, "Welcome to GoShopSim!", notification.Subject)
}

func TestNotificationService_Send_UnknownTemplateKeepsRequestedName(t *testing.T) {
	// Arrange
	svc := newService(t)

	// Act
	notification, err := svc.Send(context.Background(), SendInput{
		Type:     "push",
		Template: "black_friday_blast",
	})

	// Assert: рендерится welcome, но имя в ответе - запрошенное
	require.NoError(t, err)
	require.Equal(t, "black_friday_blast", notification.Template)
	require.Equal(t, "Welcome to GoShopSim!", notification.Subject)
}

func TestNotificationService_SendEmail_AppliesDefaults(t *testing.T) {
	// Arrange
	svc := newService(t)

	// Act
	email := svc.SendEmail(context.Background(), EmailInput{})

	// Assert
	require.True(t, strings.HasPrefix(email.ID, "eml_"), "email id, got %s", email.ID)
	require.Equal(t, "user@example.com", email.To)
	require.Equal(t, "Notification", email.Subject)
	require.Equal(t, "delivered", email.Status)
}

func TestNotificationService_SendPush_AppliesDefaults(t *testing.T) {
	// Arrange
	svc := newService(t)

	// Act
	push := svc.SendPush(context.Background(), PushInput{Body: "Your order shipped"})

	// Assert
	require.True(t, strings.HasPrefix(push.ID, "psh_"), "push id, got %s", push.ID)
	require.Equal(t, "unknown", push.UserKey)
	require.Equal(t, "Notification", push.Title)
	require.Equal(t, "delivered", push.Status)
}

func TestNotificationService_SendSMS_MasksPhone(t *testing.T) {
	// Arrange
	svc := newService(t)

	// Act
	sms := svc.SendSMS(context.Background(), SMSInput{Phone: "+15551234567", Message: "Your code is 0042"})

	// Assert
	require.True(t, strings.HasPrefix(sms.ID, "sms_"), "sms id, got %s", sms.ID)
	require.Equal(t, "+15551****", sms.Phone)
	require.Equal(t, "delivered", sms.Status)
}

func TestNotificationService_SendSMS_DefaultPhone(t *testing.T) {
	// Arrange
	svc := newService(t)

	// Act
	sms := svc.SendSMS(context.Background(), SMSInput{})

	// Assert
	require.Equal(t, "+12345****", sms.Phone)
}

func TestMaskPhone_ShortNumberKeptWhole(t *testing.T) {
	require.Equal(t, "555****", maskPhone("555"))
	require.Equal(t, "+1555****", maskPhone("+1555"))
}

func TestNotificationService_Templates_ListsAll(t *testing.T) {
	// Arrange
	svc := newService(t)

	// Act
	names := svc.Templates()

	// Assert
	require.Equal(t, []string{
		"order_confirmation",
		"payment_receipt",
		"profile_updated",
		"password_reset",
		"welcome",
		"low_stock_alert",
	}, names)
}
