package templates

import (
	"bytes"
	"fmt"
	"text/template"

	"go.uber.org/zap"
)

// FallbackName имя шаблона, на который откатывается рендеринг,
// когда запрошенное имя неизвестно
const FallbackName = "welcome"

// Rendered результат рендеринга шаблона уведомления
type Rendered struct {
	Subject string
	Body    string
}

type source struct {
	name    string
	subject string
	body    string
}

// Порядок объявления фиксирован: в нём имена отдаются наружу через Names
var sources = []source{
	{
		name:    "order_confirmation",
		subject: "Order Confirmation - #{{.order_id}}",
		body:    "Thank you for your order! Your order #{{.order_id}} has been confirmed.",
	},
	{
		name:    "payment_receipt",
		subject: "Payment Receipt - ${{.amount}}",
		body:    "Your payment of ${{.amount}} has been processed successfully.",
	},
	{
		name:    "profile_updated",
		subject: "Profile Updated",
		body:    "Your profile has been updated successfully.",
	},
	{
		name:    "password_reset",
		subject: "Password Reset Request",
		body:    "Click here to reset your password.",
	},
	{
		name:    "welcome",
		subject: "Welcome to GoShopSim!",
		body:    "Thank you for signing up!",
	},
	{
		name:    "low_stock_alert",
		subject: "Low Stock Alert - {{.product_id}}",
		body:    "Product {{.product_id}} is running low on stock.",
	},
}

type parsed struct {
	subject *template.Template
	body    *template.Template
}

// Renderer рендерит именованные шаблоны уведомлений
type Renderer struct {
	logger *zap.Logger
	byName map[string]parsed
	names  []string
}

// NewRenderer парсит встроенные шаблоны и создаёт рендерер
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Renderer{
		logger: logger,
		byName: make(map[string]parsed, len(sources)),
		names:  make([]string, 0, len(sources)),
	}

	for _, src := range sources {
		subject, err := template.New(src.name + ".subject").Parse(src.subject)
		if err != nil {
			return nil, fmt.Errorf("failed to parse subject template %s: %w", src.name, err)
		}

		body, err := template.New(src.name + ".body").Parse(src.body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse body template %s: %w", src.name, err)
		}

		r.byName[src.name] = parsed{subject: subject, body: body}
		r.names = append(r.names, src.name)
	}

	return r, nil
}

// Names возвращает имена всех шаблонов в порядке объявления
func (r *Renderer) Names() []string {
	return append([]string(nil), r.names...)
}

// Has сообщает, известен ли шаблон с таким именем
func (r *Renderer) Has(name string) bool {
	_, ok := r.byName[name]

	return ok
}

// Render рендерит тему и тело шаблона name с данными data.
// Неизвестное имя откатывается на FallbackName
func (r *Renderer) Render(name string, data map[string]any) (Rendered, error) {
	tpl, ok := r.byName[name]
	if !ok {
		r.logger.Warn("Unknown notification template, falling back",
			zap.String("template", name),
			zap.String("fallback", FallbackName),
		)

		tpl = r.byName[FallbackName]
	}

	var subject bytes.Buffer
	if err := tpl.subject.Execute(&subject, data); err != nil {
		return Rendered{}, fmt.Errorf("failed to render subject of template %s: %w", name, err)
	}

	var body bytes.Buffer
	if err := tpl.body.Execute(&body, data); err != nil {
		return Rendered{}, fmt.Errorf("failed to render body of template %s: %w", name, err)
	}

	return Rendered{
		Subject: subject.String(),
		Body:    body.String(),
	}, nil
}
