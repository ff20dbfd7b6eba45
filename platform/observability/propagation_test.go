package observability

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceContextFromHeaders(t *testing.T) {
	t.Run("extracts both headers", func(t *testing.T) {
		h := http.Header{}
		h.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
		h.Set("tracestate", "vendor=opaque")

		tc := TraceContextFromHeaders(h)

		require.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", tc.TraceParent)
		require.Equal(t, "vendor=opaque", tc.TraceState)
		assert.False(t, tc.IsZero())
	})

	t.Run("missing headers give zero context", func(t *testing.T) {
		tc := TraceContextFromHeaders(http.Header{})

		assert.Empty(t, tc.TraceParent)
		assert.Empty(t, tc.TraceState)
		assert.True(t, tc.IsZero())
	})
}

func TestTraceContextInject(t *testing.T) {
	t.Run("copies values byte for byte", func(t *testing.T) {
		in := http.Header{}
		in.Set("traceparent", "00-aaaabbbbccccddddeeeeffff00001111-1234567890abcdef-01")
		in.Set("tracestate", "congo=t61rcWkgMzE,rojo=00f067aa0ba902b7")

		out := http.Header{}
		TraceContextFromHeaders(in).Inject(out)

		assert.Equal(t, in.Get("traceparent"), out.Get("traceparent"))
		assert.Equal(t, in.Get("tracestate"), out.Get("tracestate"))
	})

	t.Run("inject after extract is idempotent", func(t *testing.T) {
		in := http.Header{}
		in.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

		out := http.Header{}
		tc := TraceContextFromHeaders(in)
		tc.Inject(out)
		TraceContextFromHeaders(out).Inject(out)

		assert.Equal(t, []string{"00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"}, out.Values("traceparent"))
		assert.Empty(t, out.Values("tracestate"))
	})

	t.Run("overwrites stale values already present", func(t *testing.T) {
		out := http.Header{}
		out.Set("traceparent", "00-stale-stale-00")

		TraceContext{TraceParent: "00-fresh-fresh-01"}.Inject(out)

		assert.Equal(t, "00-fresh-fresh-01", out.Get("traceparent"))
	})

	t.Run("zero context injects nothing", func(t *testing.T) {
		out := http.Header{}

		TraceContext{}.Inject(out)

		assert.Empty(t, out)
	})
}
