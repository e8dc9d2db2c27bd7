// Package observability provides structured logging, metrics, and tracing
// for the router.
//
// This package implements:
//   - zap loggers configured from LOG_LEVEL and LOG_FORMAT
//   - Prometheus collectors on a private registry
//   - OpenTelemetry tracing exported over OTLP gRPC
package observability
