package errinject

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("parses catalog preserving scenario order", func(t *testing.T) {
		path := writeScenarioFile(t, `
payment-service:
  - name: payment_declined
    rate: 0.5
    endpoints: ["/process", "/charge"]
    error: PaymentDeclinedException
    message: Payment declined by card issuer
    status_code: 402
  - name: gateway_timeout
    rate: 0.1
    endpoints: ["*"]
    error: PaymentGatewayTimeoutError
    message: Payment gateway did not respond in time
    status_code: 504
`)

		catalog, err := Load(path)

		require.NoError(t, err)
		require.Len(t, catalog["payment-service"], 2)
		first := catalog["payment-service"][0]
		assert.Equal(t, "payment_declined", first.Name)
		assert.Equal(t, 0.5, first.Rate)
		assert.Equal(t, []string{"/process", "/charge"}, first.Endpoints)
		assert.Equal(t, "PaymentDeclinedException", first.ErrorKind)
		assert.Equal(t, 402, first.StatusCode)
		assert.Equal(t, "gateway_timeout", catalog["payment-service"][1].Name)
	})

	t.Run("defaults status code to 500", func(t *testing.T) {
		path := writeScenarioFile(t, `
svc:
  - name: glitch
    rate: 0.2
    error: GlitchError
`)

		catalog, err := Load(path)

		require.NoError(t, err)
		sc := catalog["svc"][0]
		assert.Equal(t, 500, sc.StatusCode)
		assert.True(t, sc.Matches("/anything"), "scenario without endpoints acts as wildcard")
	})

	t.Run("rejects rate out of range", func(t *testing.T) {
		path := writeScenarioFile(t, `
svc:
  - name: broken
    rate: 1.5
`)

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of [0..1]")
	})

	t.Run("rejects unnamed scenario", func(t *testing.T) {
		path := writeScenarioFile(t, `
svc:
  - rate: 0.1
`)

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no name")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
