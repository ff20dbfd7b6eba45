package service

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/services/notification/internal/templates"
)

// Задержки доставки по каналам
const (
	emailSendDelay   = 300 * time.Millisecond
	pushSendDelay    = 100 * time.Millisecond
	defaultSendDelay = 200 * time.Millisecond

	rawEmailDelay = 400 * time.Millisecond
	rawPushDelay  = 150 * time.Millisecond
	rawSMSDelay   = 250 * time.Millisecond
)

// NotificationService доставляет уведомления по шаблонам и сырым каналам.
// Реальной отправки нет, каналы имитируются задержками
type NotificationService struct {
	renderer *templates.Renderer
	logger   *zap.Logger
}

// NewNotificationService создаёт сервис уведомлений
func NewNotificationService(renderer *templates.Renderer, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &NotificationService{
		renderer: renderer,
		logger:   logger,
	}
}

// SendInput входные данные шаблонного уведомления.
// Data - это всё тело запроса: шаблоны берут поля из него напрямую
type SendInput struct {
	Type      string
	Template  string
	Recipient string
	Data      map[string]any
}

// Notification отправленное шаблонное уведомление
type Notification struct {
	ID       string
	Type     string
	Template string
	Subject  string
	Body     string
	Status   string
	SentAt   float64
}

// Email отправленное произвольное письмо
type Email struct {
	ID      string
	To      string
	Subject string
	Status  string
}

// Push отправленное push-уведомление
type Push struct {
	ID      string
	UserKey string
	Title   string
	Status  string
}

// SMS отправленное sms. Номер телефона возвращается замаскированным
type SMS struct {
	ID     string
	Phone  string
	Status string
}

// Send рендерит шаблон и имитирует доставку по каналу input.Type.
// Неизвестный шаблон откатывается на welcome, но в ответе остаётся
// запрошенное имя
func (s *NotificationService) Send(ctx context.Context, input SendInput) (Notification, error) {
	typ := input.Type
	if typ == "" {
		typ = "email"
	}

	name := input.Template
	if name == "" {
		name = templates.FallbackName
	}

	rendered, err := s.renderer.Render(name, input.Data)
	if err != nil {
		return Notification{}, err
	}

	switch typ {
	case "email":
		simulateWork(ctx, emailSendDelay)
	case "push":
		simulateWork(ctx, pushSendDelay)
	default:
		simulateWork(ctx, defaultSendDelay)
	}

	recipient := input.Recipient
	if recipient == "" {
		recipient = "unknown"
	}

	notification := Notification{
		ID:       newID("ntf"),
		Type:     typ,
		Template: name,
		Subject:  rendered.Subject,
		Body:     rendered.Body,
		Status:   "sent",
		SentAt:   unixSeconds(),
	}

	s.logger.Info("Notification sent",
		zap.String("notification_id", notification.ID),
		zap.String("type", typ),
		zap.String("template", name),
		zap.String("recipient", recipient),
	)

	return notification, nil
}

// EmailInput входные данные произвольного письма
type EmailInput struct {
	To      string
	Subject string
	Body    string
}

// SendEmail имитирует отправку письма с произвольными темой и телом
func (s *NotificationService) SendEmail(ctx context.Context, input EmailInput) Email {
	to := input.To
	if to == "" {
		to = "user@example.com"
	}

	subject := input.Subject
	if subject == "" {
		subject = "Notification"
	}

	simulateWork(ctx, rawEmailDelay)

	email := Email{
		ID:      newID("eml"),
		To:      to,
		Subject: subject,
		Status:  "delivered",
	}

	s.logger.Info("Email sent",
		zap.String("email_id", email.ID),
		zap.String("to", to),
		zap.String("subject", subject),
	)

	return email
}

// PushInput входные данные push-уведомления
type PushInput struct {
	UserKey string
	Title   string
	Body    string
}

// SendPush имитирует отправку push-уведомления
func (s *NotificationService) SendPush(ctx context.Context, input PushInput) Push {
	userKey := input.UserKey
	if userKey == "" {
		userKey = "unknown"
	}

	title := input.Title
	if title == "" {
		title = "Notification"
	}

	simulateWork(ctx, rawPushDelay)

	push := Push{
		ID:      newID("psh"),
		UserKey: userKey,
		Title:   title,
		Status:  "delivered",
	}

	s.logger.Info("Push notification sent",
		zap.String("push_id", push.ID),
		zap.String("user_key", userKey),
	)

	return push
}

// SMSInput входные данные sms
type SMSInput struct {
	Phone   string
	Message string
}

// SendSMS имитирует отправку sms. Наружу и в лог номер попадает
// только замаскированным
func (s *NotificationService) SendSMS(ctx context.Context, input SMSInput) SMS {
	phone := input.Phone
	if phone == "" {
		phone = "+1234567890"
	}

	simulateWork(ctx, rawSMSDelay)

	sms := SMS{
		ID:     newID("sms"),
		Phone:  maskPhone(phone),
		Status: "delivered",
	}

	s.logger.Info("SMS sent",
		zap.String("sms_id", sms.ID),
		zap.String("phone", sms.Phone),
	)

	return sms
}

// Templates возвращает имена доступных шаблонов
func (s *NotificationService) Templates() []string {
	return s.renderer.Names()
}

// maskPhone оставляет от номера первые шесть символов
func maskPhone(phone string) string {
	prefix := phone
	if len(phone) > 6 {
		prefix = phone[:6]
	}
	return prefix + "****"
}

// newID генерирует id вида prefix_<12 hex символов>
func newID(prefix string) string {
	u := uuid.New()
	return prefix + "_" + hex.EncodeToString(u[:6])
}

// unixSeconds текущее время в секундах unix с дробной частью
func unixSeconds() float64 {
	return float64(time.Now().UnixMilli()) / 1000
}

// simulateWork имитирует работу канала доставки, уважая отмену контекста
func simulateWork(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
