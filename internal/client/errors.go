package client

import "fmt"

// Callers get a single error kind for every failed retrieval; the Reason
// tells a human which of the three causes occurred.
const (
	ReasonFetch  = "failed to fetch stock data"
	ReasonParse  = "failed to parse stock data"
	ReasonNoData = "no data returned"
)

// RetrievalError reports a failed snapshot retrieval.
type RetrievalError struct {
	Resource string
	Reason   string
	Err      error
}

func (e *RetrievalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s from %s: %v", e.Reason, e.Resource, e.Err)
	}
	return fmt.Sprintf("%s from %s", e.Reason, e.Resource)
}

func (e *RetrievalError) Unwrap() error { return e.Err }
