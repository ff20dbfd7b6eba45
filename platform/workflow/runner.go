// Package workflow реализует последовательную оркестрацию многошаговых
// операций с фиксированной критичностью шагов. Отказ критического шага
// прерывает workflow, отказ некритического логируется и проглатывается.
// Компенсаций и ретраев нет: это бизнес-политика вызывающего кода
package workflow

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
)

// Criticality определяет политику обработки отказа шага.
// Задаётся при объявлении шага и не меняется в рантайме
type Criticality int

const (
	// Critical отказ шага прерывает workflow, последующие шаги не выполняются
	Critical Criticality = iota
	// NonCritical отказ шага логируется, workflow продолжается
	NonCritical
)

// String имя критичности для логов и атрибутов span-ов
func (c Criticality) String() string {
	if c == NonCritical {
		return "non_critical"
	}
	return "critical"
}

// Step один шаг workflow
type Step struct {
	Name        string
	Criticality Criticality
	// Run выполняет шаг. Отказ кодируется в Result, не в error
	Run func(ctx context.Context) downstream.Result
}

// StepOutcome исход выполненного шага
type StepOutcome struct {
	Name        string
	Criticality Criticality
	Result      downstream.Result
}

// Result итог workflow
type Result struct {
	// Outcomes исходы выполненных шагов в порядке выполнения.
	// Шаги после критического отказа сюда не попадают: они не выполнялись
	Outcomes []StepOutcome
	// Failed первый критический отказ, nil если workflow дошёл до конца
	Failed *StepOutcome
}

// Completed сообщает, что workflow дошёл до конца
// (некритические отказы не в счёт)
func (r Result) Completed() bool { return r.Failed == nil }

// Outcome возвращает исход шага по имени
func (r Result) Outcome(name string) (StepOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.Name == name {
			return o, true
		}
	}
	return StepOutcome{}, false
}

// Runner выполняет шаги строго последовательно в порядке объявления.
// Создаётся на один запуск: шаги обычно замыкают данные запроса
type Runner struct {
	name   string
	logger *zap.Logger
	tracer trace.Tracer
	steps  []Step
}

// NewRunner создаёт runner с именем workflow для логов и span-ов
func NewRunner(name string, logger *zap.Logger, steps ...Step) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		name:   name,
		logger: logger,
		tracer: otel.Tracer("workflow"),
		steps:  steps,
	}
}

// Run выполняет шаги и возвращает итог. Ошибки не возвращаются:
// любой отказ закодирован в Result
func (r *Runner) Run(ctx context.Context) Result {
	log := r.logger
	if l := observability.LoggerFromContext(ctx); l != nil {
		log = l
	}
	log = log.With(zap.String("workflow", r.name))

	ctx, span := r.tracer.Start(ctx, "WORKFLOW "+r.name,
		trace.WithAttributes(attribute.Int("workflow.steps", len(r.steps))),
	)
	defer span.End()

	log.Info("workflow started", zap.Int("steps", len(r.steps)))

	var res Result
	for _, step := range r.steps {
		sr := r.runStep(ctx, step)
		res.Outcomes = append(res.Outcomes, StepOutcome{
			Name:        step.Name,
			Criticality: step.Criticality,
			Result:      sr,
		})

		if !sr.Failed() {
			log.Info("workflow step completed", zap.String("step", step.Name))
			continue
		}

		if step.Criticality == Critical {
			res.Failed = &res.Outcomes[len(res.Outcomes)-1]
			log.Error("critical workflow step failed, aborting",
				append([]zap.Field{zap.String("step", step.Name)}, failureFields(sr)...)...)
			span.SetStatus(codes.Error, "step "+step.Name+" failed")
			return res
		}

		log.Warn("non-critical workflow step failed, continuing",
			append([]zap.Field{zap.String("step", step.Name)}, failureFields(sr)...)...)
	}

	log.Info("workflow completed", zap.Int("steps", len(res.Outcomes)))
	return res
}

// runStep выполняет один шаг в собственном span-е
func (r *Runner) runStep(ctx context.Context, step Step) downstream.Result {
	ctx, span := r.tracer.Start(ctx, "STEP "+step.Name,
		trace.WithAttributes(
			attribute.String("workflow.step", step.Name),
			attribute.String("workflow.step.criticality", step.Criticality.String()),
		),
	)
	defer span.End()

	sr := step.Run(ctx)
	if sr.Failed() {
		span.SetStatus(codes.Error, sr.Kind.String())
	}
	return sr
}

// failureFields поля отказа для логов
func failureFields(res downstream.Result) []zap.Field {
	fields := []zap.Field{zap.String("kind", res.Kind.String())}
	switch res.Kind {
	case downstream.InjectedFailure:
		fields = append(fields,
			zap.String("error_kind", res.ErrorKind),
			zap.String("origin", res.Service),
			zap.Int("status", res.StatusCode))
	case downstream.TransportFailure:
		fields = append(fields, zap.Error(res.Cause))
	}
	return fields
}
