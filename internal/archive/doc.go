// Package archive persists completed parse runs in SQLite.
//
// Each run records where its input came from (HTTP submit, the fixture
// endpoint, or the CLI), line and block counts, the languages observed, and
// the exact JSON response that was served, so a run can be replayed byte for
// byte. Runs are immutable once written; retention prunes them by age.
//
// Schema changes bump schemaVersion in schema.go; an older database is
// rejected with ErrSchemaMismatch and must be purged or deleted.
package archive
