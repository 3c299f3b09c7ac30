// Package otel is a placeholder for an OpenTelemetry observer.
package otel
