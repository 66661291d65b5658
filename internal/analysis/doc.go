// Package analysis turns one claimed job into a stored scoring result.
//
// Processor.Process loads the job's session and landmark batches, assembles
// the frames in recording order, asks the scorer for a result and writes it.
// Every job ends terminal: completed with its session completed, or failed
// with an error message and its session failed. Process has no return value;
// failures are recorded in the store and logged.
package analysis
