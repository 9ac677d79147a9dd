// Package http implements the HTTP handlers of the analysis API.
//
// Handlers are thin: they parse and validate the request, call the service
// layer and render the result with go-chi/render. Every error goes through
// errors.ErrorHandler and is returned as RFC 7807 problem details.
//
// Routes, mounted under /api by internal/app:
//
//	GET  /health                  liveness plus latest-run summary
//	GET  /health/ready            output directory and cache readiness
//	GET  /health/live             runtime information
//	GET  /version                 build and API version
//	POST /analysis                multipart upload, one field per dataset
//	GET  /summary/market          market summary of the latest run
//	GET  /summary/voc             voice-of-customer summary of the latest run
//	GET  /data/{dataset}          paginated canonical rows (?page=&per_page=)
//	POST /cache/invalidate        drop memoized runs (all, or one ?fingerprint=)
//
// The Prometheus scrape endpoint is served by MetricsHandler at /metrics.
package http
