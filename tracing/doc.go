// Package tracing integrates OpenTelemetry with the execution context so that
// every mutation made by an executor can be followed as a span event. All
// instrumentation is kept in a separate package so that applications which do
// not require tracing can exclude it from their build.
package tracing
