package nasdaq

import "fmt"

// FetchError reports a transport-level failure against the listing endpoint.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a structurally malformed listing response. Malformed
// individual cells never produce it; those decode as "no value".
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse listing response: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }
