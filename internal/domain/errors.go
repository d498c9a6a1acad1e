package domain

import (
	"errors"
	"fmt"
)

// ErrNoCandidates is returned when candidate discovery yields nothing at all.
// It is the only curation failure surfaced to callers short of the ledger
// being unreachable.
var ErrNoCandidates = errors.New("no candidate articles found")

// ErrInvalidInput is returned by the describe path when a caller-supplied URL
// cannot be fetched.
var ErrInvalidInput = errors.New("could not process this URL")

// FetchError reports a failed download or extraction of a single URL. In the
// curation path it drops only the affected candidate.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StoreError reports an unreachable or failing ledger store. It aborts the
// current pipeline run.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
