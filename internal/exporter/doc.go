// Package exporter writes analysis results to disk.
//
// CSVWriter is the low-level writer: headers, streaming and a UTF-8 BOM so
// Excel opens the files as UTF-8. Exporter writes the market and VOC summary
// documents as JSON plus one canonical CSV per normalized dataset.
//
// Example usage:
//
//	exp := exporter.NewExporter(paths, logger)
//	manifest, err := exp.Export(result)
package exporter
