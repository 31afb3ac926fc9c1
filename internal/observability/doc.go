// Package observability provides logging and metrics support for the music
// catalog service.
//
// # Overview
//
// The observability package provides:
//
//   - Structured logging with zerolog
//   - Prometheus metrics for HTTP traffic, CSV imports, and publisher dedup
//   - Context helpers for propagating request and import run identifiers
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Str("request_id", reqID).Msg("import started")
//
// # Metrics
//
// Initialize metrics:
//
//	metrics := observability.NewMetrics("music_catalog")
//
// Record metrics:
//
//	metrics.RecordWorksImported("Allsanger", 120, 8)
//	metrics.RecordMergeCompleted(12)
//
// # Context Helpers
//
// Store and retrieve request context:
//
//	ctx = observability.WithRequestID(ctx, requestID)
//	reqID := observability.RequestIDFromContext(ctx)
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
