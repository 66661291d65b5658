// Package store defines the storage gateway used by the analysis worker:
// one interface per collection (jobs, sessions, landmark batches, results).
// Every operation is a single atomic statement against the backing store;
// cross-entity consistency comes from the order in which callers issue writes,
// not from multi-statement transactions.
package store
