// Package testdb provides helpers for PostgreSQL integration tests.
//
// Tests call GetTestDBWithT, which skips the test unless DATABASE_URL (or
// FUJI_TEST_DB_URL) is set, applies the embedded migrations and truncates the
// analysis tables. Tests that only need a single store can run inside WithTx
// so their writes are rolled back.
//
// Packages sharing one database truncate each other's rows, so integration
// runs use `go test -p 1 ./...`.
package testdb
