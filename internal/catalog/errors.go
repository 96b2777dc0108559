package catalog

import "fmt"

// LoadError reports a network failure or a non-success HTTP status while
// fetching a source document.
type LoadError struct {
	URL        string
	StatusCode int // zero when the request never got a response
	Err        error
}

func (e *LoadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("load %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("load %s: %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that could not be decoded.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EmptyResultError reports a successful load that produced no eligible
// channels.
type EmptyResultError struct {
	Source string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("source %q has no eligible channels", e.Source)
}
