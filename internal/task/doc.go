// Package task runs the analysis poll loop.
//
// A Poller repeatedly claims the oldest pending job and hands it to a
// JobProcessor. When no job is pending it sleeps for the poll interval; when
// claiming fails or the loop body panics it sleeps for the error cooldown.
// Cancelling the context stops the loop between jobs: an in-flight job always
// runs to completion first. WorkerPool runs several identical pollers in one
// process; the atomic claim keeps them from processing the same job.
package task
