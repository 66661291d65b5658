// Package postgres provides the PostgreSQL implementation of the storage
// gateway defined in internal/store, together with the embedded goose
// migrations that create its schema. Every store method issues exactly one
// statement so each write is atomic on its own.
package postgres
