// Package metrics defines the observability hooks for publish runs and their
// Prometheus-backed implementation.
package metrics
