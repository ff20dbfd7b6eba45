package errinject

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand выдаёт заранее заданную последовательность значений
// и считает потреблённые броски
type scriptedRand struct {
	t      *testing.T
	values []float64
	next   int
}

func (r *scriptedRand) Float64() float64 {
	require.Less(r.t, r.next, len(r.values), "engine consumed more draws than scripted")
	v := r.values[r.next]
	r.next++
	return v
}

func TestScenarioMatches(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		endpoint string
		want     bool
	}{
		{"wildcard matches anything", []string{"*"}, "/health", true},
		{"prefix pattern matches nested path", []string{"/api/*"}, "/api/login", true},
		{"prefix pattern matches deeper path", []string{"/api/*"}, "/api/users/42", true},
		{"prefix pattern rejects other paths", []string{"/api/*"}, "/health", false},
		{"exact pattern matches itself", []string{"/validate"}, "/validate", true},
		{"exact pattern rejects superstring", []string{"/validate"}, "/validate2", false},
		{"exact pattern rejects prefix", []string{"/validate"}, "/valid", false},
		{"any pattern in the list suffices", []string{"/orders", "/checkout"}, "/checkout", true},
		{"wildcard anywhere in the list", []string{"/orders", "*"}, "/whatever", true},
		{"empty pattern list acts as wildcard", nil, "/whatever", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := Scenario{Endpoints: tt.patterns}
			assert.Equal(t, tt.want, sc.Matches(tt.endpoint))
		})
	}
}

func TestEngineEvaluate_Rates(t *testing.T) {
	catalog := Catalog{
		"payment-service": {
			{Name: "always", Rate: 1.0, Endpoints: []string{"*"}, ErrorKind: "AlwaysError", StatusCode: 500},
		},
		"search-service": {
			{Name: "never", Rate: 0.0, Endpoints: []string{"*"}, ErrorKind: "NeverError", StatusCode: 500},
		},
	}

	t.Run("rate 1.0 always fires", func(t *testing.T) {
		eng := New(catalog, &scriptedRand{t: t, values: []float64{0.999999}})

		inj, ok := eng.Evaluate("payment-service", "/process")

		require.True(t, ok)
		assert.Equal(t, "always", inj.Scenario)
		assert.Equal(t, "AlwaysError", inj.ErrorKind)
	})

	t.Run("rate 0.0 never fires even on a zero draw", func(t *testing.T) {
		eng := New(catalog, &scriptedRand{t: t, values: []float64{0.0}})

		_, ok := eng.Evaluate("search-service", "/search")

		assert.False(t, ok)
	})
}

func TestEngineEvaluate_DeclarationOrder(t *testing.T) {
	catalog := Catalog{
		"order-service": {
			{Name: "first", Rate: 0.5, Endpoints: []string{"/checkout"}, ErrorKind: "FirstError", StatusCode: 400},
			{Name: "second", Rate: 0.5, Endpoints: []string{"/checkout"}, ErrorKind: "SecondError", StatusCode: 500},
		},
	}

	t.Run("first successful draw wins, later scenarios not drawn", func(t *testing.T) {
		rnd := &scriptedRand{t: t, values: []float64{0.1}}
		eng := New(catalog, rnd)

		inj, ok := eng.Evaluate("order-service", "/checkout")

		require.True(t, ok)
		assert.Equal(t, "first", inj.Scenario)
		assert.Equal(t, 1, rnd.next, "second scenario must not consume a draw")
	})

	t.Run("each matching scenario draws independently", func(t *testing.T) {
		rnd := &scriptedRand{t: t, values: []float64{0.9, 0.1}}
		eng := New(catalog, rnd)

		inj, ok := eng.Evaluate("order-service", "/checkout")

		require.True(t, ok)
		assert.Equal(t, "second", inj.Scenario)
		assert.Equal(t, 2, rnd.next)
	})

	t.Run("non-matching scenarios consume no draws", func(t *testing.T) {
		rnd := &scriptedRand{t: t, values: []float64{0.1}}
		eng := New(Catalog{
			"svc": {
				{Name: "narrow", Rate: 1.0, Endpoints: []string{"/other"}},
				{Name: "wide", Rate: 0.5, Endpoints: []string{"*"}, ErrorKind: "WideError", StatusCode: 503},
			},
		}, rnd)

		inj, ok := eng.Evaluate("svc", "/path")

		require.True(t, ok)
		assert.Equal(t, "wide", inj.Scenario)
		assert.Equal(t, 1, rnd.next, "narrow scenario must not consume a draw")
	})

	t.Run("no successful draw means no injection", func(t *testing.T) {
		rnd := &scriptedRand{t: t, values: []float64{0.9, 0.9}}
		eng := New(catalog, rnd)

		_, ok := eng.Evaluate("order-service", "/checkout")

		assert.False(t, ok)
	})
}

func TestEngineEvaluate_UnknownService(t *testing.T) {
	// Ни одного броска: для неизвестного сервиса движок молчит
	eng := New(Default(), &scriptedRand{t: t})

	inj, ok := eng.Evaluate("billing-service", "/charge")

	assert.False(t, ok)
	assert.Zero(t, inj)
}

func TestDefaultCatalog(t *testing.T) {
	catalog := Default()

	t.Run("nineteen scenarios across nine services", func(t *testing.T) {
		require.Len(t, catalog, 9)
		total := 0
		for _, scenarios := range catalog {
			total += len(scenarios)
		}
		assert.Equal(t, 19, total)
	})

	t.Run("payment scenarios keep declaration order", func(t *testing.T) {
		names := make([]string, 0, 3)
		for _, sc := range catalog["payment-service"] {
			names = append(names, sc.Name)
		}
		assert.Equal(t, []string{"payment_declined", "fraud_detected", "gateway_timeout"}, names)
	})

	t.Run("gateway rows match the published table", func(t *testing.T) {
		want := []Scenario{
			{
				Name:       "rate_limit_exceeded",
				Rate:       0.02,
				Endpoints:  []string{"/api/*"},
				ErrorKind:  "RateLimitError",
				Message:    "Rate limit exceeded. Please retry after 60 seconds.",
				StatusCode: 429,
			},
			{
				Name:       "service_unavailable",
				Rate:       0.01,
				Endpoints:  []string{"*"},
				ErrorKind:  "ServiceUnavailableError",
				Message:    "Downstream service temporarily unavailable",
				StatusCode: 503,
			},
		}
		if diff := cmp.Diff(want, catalog["api-gateway"]); diff != "" {
			t.Errorf("api-gateway scenarios mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("highest rate belongs to inventory out_of_stock", func(t *testing.T) {
		sc := catalog["inventory-service"][0]
		assert.Equal(t, "out_of_stock", sc.Name)
		assert.Equal(t, 0.08, sc.Rate)
		assert.Equal(t, 409, sc.StatusCode)
		assert.Equal(t, []string{"/reserve", "/check"}, sc.Endpoints)
	})
}
