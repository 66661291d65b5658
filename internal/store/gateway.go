package store

// Gateway bundles the four collections the analysis worker touches so they
// can be injected as one dependency.
type Gateway struct {
	Jobs     JobStore
	Sessions SessionStore
	Batches  BatchStore
	Results  ResultStore
}
