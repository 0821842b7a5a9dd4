// Package sqlite provides a SQLite-based implementation of the VectorStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. Embeddings are stored as
// little-endian float32 blobs alongside chunk text; similarity is computed in
// Go over candidates pre-filtered by document metadata in SQL, so filters
// restrict the search space before ranking rather than trimming after it.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.oceanus/data/oceanus.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode; chunk replacement happens in a single
// transaction, so readers only ever observe a committed chunk set.
package sqlite
