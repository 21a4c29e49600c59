// Package tracing sets up OpenTelemetry tracing for the CLI.
//
// Tracing is opt-in. Without an endpoint Setup registers nothing and the
// global tracer stays the no-op default, so the spans emitted by the
// scenario runner cost nothing.
package tracing

import (
	"context"
	"strings"

	"github.com/arthur-debert/uievent/pkg/errors"
	"github.com/arthur-debert/uievent/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Options configures the exporter
type Options struct {
	Enabled bool
	// Endpoint is a URL ("http://host:4318") or a bare host:port, which is
	// dialed without TLS
	Endpoint    string
	ServiceName string
	Version     string
}

// ShutdownFunc flushes pending spans and stops the exporter
type ShutdownFunc func(context.Context) error

// Setup installs a global tracer provider exporting over OTLP/HTTP. The
// returned shutdown function should be deferred by the caller.
func Setup(ctx context.Context, opts Options) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }
	logger := logging.GetLogger("tracing")

	if !opts.Enabled || opts.Endpoint == "" {
		logger.Trace().Msg("Tracing disabled")
		return noop, nil
	}

	var exporterOpts []otlptracehttp.Option
	if strings.Contains(opts.Endpoint, "://") {
		exporterOpts = append(exporterOpts, otlptracehttp.WithEndpointURL(opts.Endpoint))
	} else {
		exporterOpts = append(exporterOpts, otlptracehttp.WithEndpoint(opts.Endpoint), otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, exporterOpts...)
	if err != nil {
		return noop, errors.Wrap(err, errors.ErrInternal, "failed to create trace exporter").
			WithDetail("endpoint", opts.Endpoint)
	}

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = logging.AppDirName
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(opts.Version),
		),
	)
	if err != nil {
		return noop, errors.Wrap(err, errors.ErrInternal, "failed to build trace resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	logger.Debug().Str("endpoint", opts.Endpoint).Str("service", serviceName).Msg("Tracing enabled")
	return tp.Shutdown, nil
}
