package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetup_NoopWhenDisabled(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"disabled", Options{Enabled: false, Endpoint: "http://localhost:4318"}},
		{"no endpoint", Options{Enabled: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := otel.GetTracerProvider()

			shutdown, err := Setup(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.NoError(t, shutdown(context.Background()))
			assert.Equal(t, before, otel.GetTracerProvider())
		})
	}
}

func TestSetup_InstallsProvider(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	endpoints := []string{"http://192.0.2.1:4318", "192.0.2.1:4318"}
	for _, endpoint := range endpoints {
		t.Run(endpoint, func(t *testing.T) {
			// Non-routable address; nothing is exported because no span ends
			shutdown, err := Setup(context.Background(), Options{Enabled: true, Endpoint: endpoint, ServiceName: "test"})
			require.NoError(t, err)

			_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
			assert.True(t, ok)
			assert.NoError(t, shutdown(context.Background()))
		})
	}
}
