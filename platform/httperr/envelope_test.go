package httperr

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/errinject"
)

func TestWriteInjection(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteInjection(rec, "payment-service", errinject.Injection{
		Scenario:   "payment_declined",
		ErrorKind:  "PaymentDeclinedException",
		Message:    "Payment declined by card issuer",
		StatusCode: 402,
	})

	assert.Equal(t, 402, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "PaymentDeclinedException", env.Error)
	assert.Equal(t, "Payment declined by card issuer", env.Message)
	assert.Equal(t, "payment-service", env.Service)
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()

	Write(rec, 502, "order-service", KindDownstreamUnavailable, "connection refused")

	assert.Equal(t, 502, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, Envelope{
		Success: false,
		Error:   KindDownstreamUnavailable,
		Message: "connection refused",
		Service: "order-service",
	}, env)
}

func TestWriteDownstream_InjectedFailurePassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteDownstream(rec, "order-service", downstream.Result{
		Kind:       downstream.InjectedFailure,
		ErrorKind:  "OutOfStockError",
		Message:    "Product prod_003 is out of stock",
		Service:    "inventory-service",
		StatusCode: 409,
	})

	// Статус и envelope источника, а не вызывающего сервиса
	assert.Equal(t, 409, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "OutOfStockError", env.Error)
	assert.Equal(t, "inventory-service", env.Service)
}

func TestWriteDownstream_TransportFailureBecomes502(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteDownstream(rec, "order-service", downstream.Result{
		Kind:  downstream.TransportFailure,
		Cause: errors.New("dial tcp 127.0.0.1:5005: connect: connection refused"),
	})

	assert.Equal(t, 502, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, KindDownstreamUnavailable, env.Error)
	assert.Equal(t, "order-service", env.Service)
	assert.Contains(t, env.Message, "connection refused")
}

func TestWriteDownstream_TransportFailureWithoutCause(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteDownstream(rec, "search-service", downstream.Result{Kind: downstream.TransportFailure})

	assert.Equal(t, 502, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "downstream call failed", env.Message)
}
