package esg

import "fmt"

// FetchError reports a page that could not be crawled. A failed page is
// dropped from the batch, never fabricated.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// IndexError reports the vector store being unavailable or rejecting an
// operation.
type IndexError struct {
	Op  string
	Err error
}

func (e *IndexError) Error() string { return fmt.Sprintf("index %s: %v", e.Op, e.Err) }
func (e *IndexError) Unwrap() error { return e.Err }

// ExtractionError reports a profile that could not be parsed out of the
// model response, or an index with nothing to retrieve.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return "profile extraction: " + e.Reason
	}
	return fmt.Sprintf("profile extraction: %s: %v", e.Reason, e.Err)
}
func (e *ExtractionError) Unwrap() error { return e.Err }

// GenerationError reports a single parameter whose policy generation failed.
// Other parameters keep going.
type GenerationError struct {
	Parameter string
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("policy generation for %q: %v", e.Parameter, e.Err)
}
func (e *GenerationError) Unwrap() error { return e.Err }
