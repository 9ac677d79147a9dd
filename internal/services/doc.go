// Package services implements the business logic layer between the HTTP
// handlers and the analysis pipeline.
//
// ReportService accepts uploaded or on-disk exports, validates them, runs the
// pipeline under the configured timeout and keeps the latest result for the
// summary and data endpoints. HealthService reports liveness, readiness and
// version information.
//
// Services take their dependencies through constructors and log with an
// injected *slog.Logger. Errors are returned as internal/errors types so the
// transport layer can map them to problem responses.
package services
