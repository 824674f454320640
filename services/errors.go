package services

import "errors"

// Batch jobs catch these at the per-user boundary and record them in
// the sweep report; they never abort a run. Only failing to list the
// user population is fatal to a sweep.
var (
	ErrProviderUnavailable        = errors.New("ai provider unavailable")
	ErrMalformedSuggestionPayload = errors.New("malformed suggestion payload")
	ErrAggregation                = errors.New("aggregation failed")
	ErrStoreWrite                 = errors.New("store write failed")
)
