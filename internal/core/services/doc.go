// Package services implements the driving port interfaces.
// Services contain the core retrieval pipeline - chunking, metadata
// tagging, ingestion orchestration, and filtered similarity retrieval -
// and orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no external service dependencies of their own.
package services
