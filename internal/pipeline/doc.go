// Package pipeline runs one analysis: it normalizes every uploaded or
// discovered source concurrently, aggregates the market and voice-of-customer
// summaries and optionally memoizes the result in an explicit Cache keyed by a
// fingerprint of the inputs.
//
// A source that fails to load or resolve its schema is recorded in the
// result's stages and errors; the remaining sources still contribute.
package pipeline
