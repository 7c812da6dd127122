package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/kyc-co/synthforms/internal/logging"
)

// TracerName is the instrumentation name used for every span the service starts.
const TracerName = "synthforms"

var provider *sdktrace.TracerProvider

// TracerSettings selects where spans go and how many are kept.
type TracerSettings struct {
	Enabled     bool
	Endpoint    string
	Environment string
	// SampleRatio applies to root spans; children follow their parent. Values outside
	// (0, 1] keep every trace.
	SampleRatio float64
}

func (s TracerSettings) sampler() sdktrace.Sampler {
	if s.SampleRatio <= 0 || s.SampleRatio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(s.SampleRatio))
}

// Tracer returns the service tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// InitTracer installs an OTLP gRPC tracer provider. With tracing disabled the global
// no-op provider stays in place.
func InitTracer(ctx context.Context, s TracerSettings) error {
	if !s.Enabled {
		logging.Logger.Info("tracing is disabled")
		return nil
	}

	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(s.Endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	))
	if err != nil {
		return fmt.Errorf("create OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(logging.ServiceName),
		semconv.DeploymentEnvironmentKey.String(s.Environment),
	))
	if err != nil {
		return fmt.Errorf("create trace resource: %w", err)
	}

	provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(5*time.Second),
			sdktrace.WithMaxQueueSize(4096),
		),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(s.sampler()),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logging.Logger.Info("tracer initialized",
		zap.String("endpoint", s.Endpoint),
		zap.Float64("sample_ratio", s.SampleRatio),
	)
	return nil
}

// ShutdownTracer flushes pending spans. It is a no-op when InitTracer installed nothing.
func ShutdownTracer(ctx context.Context) {
	if provider == nil {
		return
	}
	if err := provider.Shutdown(ctx); err != nil {
		logging.Logger.Error("failed to shut down tracer provider", zap.Error(err))
	}
	provider = nil
}
