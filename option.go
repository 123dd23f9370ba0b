package objstore

import (
	"github.com/viant/objstore/service/storage"
	"github.com/viant/objstore/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the Service
type Option func(s *Service)

// WithConfig sets the configuration instead of loading it from the environment
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithConfigURL loads configuration from a YAML document before applying
// environment variables
func WithConfigURL(URL string) Option {
	return func(s *Service) {
		s.configURL = URL
	}
}

// WithEngine injects a ready engine, bypassing engine selection
func WithEngine(engine storage.Engine) Option {
	return func(s *Service) {
		s.engine = engine
	}
}

// WithTracing configures OpenTelemetry tracing with the stdout exporter. If
// outputFile is empty spans go to stdout.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
