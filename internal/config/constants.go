package config

import "time"

// Application constants
const (
	// Application Info
	AppName = "Auto-Report"

	// EnvPrefix namespaces every environment variable, e.g. AUTOREPORT_SERVER_PORT
	EnvPrefix = "AUTOREPORT"
	// ConfigFileEnv names a YAML config file explicitly
	ConfigFileEnv = "AUTOREPORT_CONFIG_FILE"
	// DotEnvFile is loaded into the environment when present
	DotEnvFile = ".env"

	// Output file names
	MarketSummaryFile = "market_summary.json"
	VOCSummaryFile    = "voc_summary.json"
	CanonicalSuffix   = "_canonical.csv"

	// Directory defaults (relative to the base directory)
	DefaultDataDir    = "data"
	DefaultOutputDir  = "output"
	DefaultLogsDir    = "logs"
	DefaultUploadsDir = "uploads"
	DefaultLogFile    = "logs/app.log"

	// Analysis defaults
	DefaultNumPriceBands   = 5
	DefaultMaxUploadMB     = 50
	DefaultCacheTTL        = 30 * time.Minute
	DefaultCacheMaxEntries = 8
	DefaultRunTimeout      = 2 * time.Minute
	DefaultUploadRetention = 10

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Pagination
	DefaultPageSize = 50
	MaxPageSize     = 500
)
