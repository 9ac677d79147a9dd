// Package files provides file system operations and discovery utilities.
//
// Discovery maps export files to datasets by their conventional names
// ("1. amazon销售.xlsx", "2. tk视频评论.csv", "amazon_reviews.csv", ...).
// Manager resolves paths against the configured directories and archives
// uploaded sources per run.
//
// Example usage:
//
//	d := files.NewDiscovery(paths.BaseDir, logger)
//	found, err := d.DiscoverSources(paths.DataDir)
package files
