package worker

import (
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	ttrace "github.com/xShinnRyuu/amazon-neptune-tools/internal/telemetry/trace"
	traceExporter "github.com/xShinnRyuu/amazon-neptune-tools/internal/telemetry/trace/exporter"
)

func (s *Worker) InitGlobalProvider(name, endpoint string) {
	spanExporter := traceExporter.NewOTLP(endpoint)

	tracerProvider, tracerProviderCloseFn, err := ttrace.NewTraceProviderBuilder(name).
		SetExporter(spanExporter).
		Build()
	if err != nil {
		log.Fatal().Err(err).Msgf("failed initializing the tracer provider")
	}
	s.traceProviderCloseFn = append(s.traceProviderCloseFn, tracerProviderCloseFn)

	// set global propagator to tracecontext (the default is no-op).
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	otel.SetTracerProvider(tracerProvider)
}
