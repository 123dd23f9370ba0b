// Package tracing records OpenTelemetry spans around storage engine
// operations (save, reload, delete all). Spans are no-ops until Init or
// InitWithExporter installs a provider.
package tracing
