// Package app wires configuration, observability, the analysis services and
// the HTTP router into a runnable application.
//
// Initialization order:
//
//  1. Resolve and create the configured directories
//  2. Initialize OpenTelemetry (tracer, meter, Prometheus exporter)
//  3. Build the pipeline, report service and health service
//  4. Set up middleware and routes
//  5. Create the HTTP server
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests and
// flushes telemetry before returning.
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run()
package app
