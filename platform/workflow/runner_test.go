package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/downstream"
)

func okStep(name string, executed *[]string) Step {
	return Step{
		Name:        name,
		Criticality: Critical,
		Run: func(ctx context.Context) downstream.Result {
			*executed = append(*executed, name)
			return downstream.Result{Kind: downstream.Success, StatusCode: 200}
		},
	}
}

func failingStep(name string, crit Criticality, res downstream.Result, executed *[]string) Step {
	return Step{
		Name:        name,
		Criticality: crit,
		Run: func(ctx context.Context) downstream.Result {
			*executed = append(*executed, name)
			return res
		},
	}
}

func TestRunner_AllStepsSucceed(t *testing.T) {
	var executed []string
	runner := NewRunner("checkout", zap.NewNop(),
		okStep("reserve_inventory", &executed),
		okStep("process_payment", &executed),
		okStep("send_notification", &executed),
	)

	res := runner.Run(context.Background())

	assert.True(t, res.Completed())
	assert.Nil(t, res.Failed)
	assert.Equal(t, []string{"reserve_inventory", "process_payment", "send_notification"}, executed)
	require.Len(t, res.Outcomes, 3)
	assert.Equal(t, "reserve_inventory", res.Outcomes[0].Name)
}

func TestRunner_CriticalFailureAborts(t *testing.T) {
	injected := downstream.Result{
		Kind:       downstream.InjectedFailure,
		ErrorKind:  "PaymentDeclinedException",
		Message:    "Payment declined by card issuer",
		Service:    "payment-service",
		StatusCode: 402,
	}

	var executed []string
	runner := NewRunner("checkout", zap.NewNop(),
		okStep("reserve_inventory", &executed),
		failingStep("process_payment", Critical, injected, &executed),
		okStep("send_notification", &executed),
	)

	res := runner.Run(context.Background())

	assert.False(t, res.Completed())
	require.NotNil(t, res.Failed)
	assert.Equal(t, "process_payment", res.Failed.Name)
	assert.Equal(t, injected, res.Failed.Result)

	// Шаг после критического отказа не выполнялся и в исходы не попал
	assert.Equal(t, []string{"reserve_inventory", "process_payment"}, executed)
	assert.Len(t, res.Outcomes, 2)
}

func TestRunner_FirstStepCriticalFailure(t *testing.T) {
	transport := downstream.Result{
		Kind:  downstream.TransportFailure,
		Cause: errors.New("dial tcp: connection refused"),
	}

	var executed []string
	runner := NewRunner("checkout", zap.NewNop(),
		failingStep("reserve_inventory", Critical, transport, &executed),
		okStep("process_payment", &executed),
	)

	res := runner.Run(context.Background())

	require.NotNil(t, res.Failed)
	assert.Equal(t, "reserve_inventory", res.Failed.Name)
	assert.Equal(t, []string{"reserve_inventory"}, executed)
	assert.Len(t, res.Outcomes, 1)
}

func TestRunner_NonCriticalFailureContinues(t *testing.T) {
	tests := []struct {
		name string
		res  downstream.Result
	}{
		{
			"injected failure swallowed",
			downstream.Result{Kind: downstream.InjectedFailure, ErrorKind: "EmailDeliveryError", StatusCode: 502},
		},
		{
			"transport failure swallowed",
			downstream.Result{Kind: downstream.TransportFailure, Cause: errors.New("timeout")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var executed []string
			runner := NewRunner("checkout", zap.NewNop(),
				okStep("process_payment", &executed),
				failingStep("send_notification", NonCritical, tt.res, &executed),
				okStep("track_event", &executed),
			)

			res := runner.Run(context.Background())

			assert.True(t, res.Completed(), "non-critical failure must not abort the workflow")
			assert.Nil(t, res.Failed)
			assert.Equal(t, []string{"process_payment", "send_notification", "track_event"}, executed)

			// Отказ виден в исходах, хоть и проглочен
			outcome, ok := res.Outcome("send_notification")
			require.True(t, ok)
			assert.True(t, outcome.Result.Failed())
		})
	}
}

func TestRunner_OutcomeLookup(t *testing.T) {
	var executed []string
	runner := NewRunner("checkout", zap.NewNop(), okStep("reserve_inventory", &executed))

	res := runner.Run(context.Background())

	_, ok := res.Outcome("missing")
	assert.False(t, ok)

	outcome, ok := res.Outcome("reserve_inventory")
	require.True(t, ok)
	assert.Equal(t, Critical, outcome.Criticality)
}

func TestRunner_NoSteps(t *testing.T) {
	runner := NewRunner("empty", zap.NewNop())

	res := runner.Run(context.Background())

	assert.True(t, res.Completed())
	assert.Empty(t, res.Outcomes)
}
