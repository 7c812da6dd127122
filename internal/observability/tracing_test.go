package observability

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracer_DisabledInstallsNothing(t *testing.T) {
	provider = nil

	require.NoError(t, InitTracer(context.Background(), TracerSettings{}))
	assert.Nil(t, provider)

	ShutdownTracer(context.Background())
}

func TestInitTracer_ConnectsLazily(t *testing.T) {
	original := otel.GetTracerProvider()
	defer otel.SetTracerProvider(original)
	defer ShutdownTracer(context.Background())

	err := InitTracer(context.Background(), TracerSettings{Enabled: true, Endpoint: "collector.invalid:4317", SampleRatio: 0.5})

	require.NoError(t, err)
	assert.NotNil(t, provider)
	assert.Same(t, provider, otel.GetTracerProvider())
}

func TestTracerSettings_Sampler(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{name: "unset keeps everything", ratio: 0, want: "AlwaysOnSampler"},
		{name: "one keeps everything", ratio: 1, want: "AlwaysOnSampler"},
		{name: "fraction is parent based", ratio: 0.25, want: "ParentBased{root:TraceIDRatioBased{0.25}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TracerSettings{SampleRatio: tt.ratio}.sampler().Description()
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestTracer_UsesServiceScope(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	defer otel.SetTracerProvider(original)

	_, span := Tracer().Start(context.Background(), "forms.generate")
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, TracerName, spans[0].InstrumentationScope().Name)
}

func TestTracingIntegration(t *testing.T) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		t.Skip("no OTLP endpoint configured")
	}

	require.NoError(t, InitTracer(context.Background(), TracerSettings{Enabled: true, Endpoint: endpoint}))
	ShutdownTracer(context.Background())
}
