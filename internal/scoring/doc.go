// Package scoring is the client for the external posture scoring service.
//
// Client.Score never fails: when the service cannot produce a valid result
// (transport error, non-2xx status, empty or malformed body, a body failing
// validation) it returns a deterministic low-confidence fallback result whose
// engine is "fallback". Transient failures are retried with exponential
// backoff before falling back.
package scoring
