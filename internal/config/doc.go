// Package config provides centralized configuration management for Auto-Report.
// It loads configuration from multiple sources, validates it, and resolves the
// directories the pipeline reads from and writes to.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority), optionally seeded from .env
//  2. A YAML configuration file (config.yaml, configs/config.yaml or
//     the file named by AUTOREPORT_CONFIG_FILE)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern AUTOREPORT_<SECTION>_<KEY>:
//
//	AUTOREPORT_SERVER_PORT=8080
//	AUTOREPORT_LOGGING_LEVEL=debug
//	AUTOREPORT_ANALYSIS_NUM_PRICE_BANDS=5
//	AUTOREPORT_ANALYSIS_CACHE_TTL=30m
//	AUTOREPORT_TELEMETRY_METRIC_EXPORTER=prometheus
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := cfg.ResolvePaths()
package config
