// Package domain contains the core entities of the analysis orchestrator:
// analysis jobs, recording sessions, landmark batches and scoring results.
// It is independent of any storage or transport concern.
package domain
