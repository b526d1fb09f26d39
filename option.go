package ruler

import (
	"log"

	"github.com/viant/afs/storage"
	"github.com/viant/ruler/runtime/execution"
	"github.com/viant/ruler/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option represents a service option
type Option func(s *Service)

// WithSeed sets values every new context starts with
func WithSeed(values map[string]interface{}) Option {
	return func(s *Service) {
		if s.seed == nil {
			s.seed = make(map[string]interface{}, len(values))
		}
		for k, v := range values {
			s.seed[k] = v
		}
	}
}

// WithSeedURL sets the location of a YAML or JSON seed document
func WithSeedURL(URL string) Option {
	return func(s *Service) {
		s.seedURL = URL
	}
}

// WithFsOptions with seed file system options
func WithFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.fsOptions = append(s.fsOptions, options...)
	}
}

// WithStateListeners attaches listeners to every created context
func WithStateListeners(listeners ...execution.StateListener) Option {
	return func(s *Service) {
		s.listeners = append(s.listeners, listeners...)
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		if err := tracing.Init(serviceName, serviceVersion, outputFile); err != nil {
			log.Printf("failed to initialise tracing: %v", err)
			return
		}
		s.tracing = true
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		if err := tracing.InitWithExporter(serviceName, serviceVersion, exporter); err != nil {
			log.Printf("failed to initialise tracing: %v", err)
			return
		}
		s.tracing = true
	}
}
