// Package extractors provides implementations of the TextExtractor
// interface for various document formats. Each extractor knows how
// to pull plain text out of a specific file extension.
//
// Extractors are registered with the Registry at startup.
package extractors
