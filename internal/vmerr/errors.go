// Package vmerr collects the sentinel errors shared across the
// simulator's modules, and the fatal/invariant error type used for
// programmer errors that should halt the process rather than be
// recovered from.
package vmerr

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

var (
	ErrMalformedTrace    = fmt.Errorf("malformed trace input")
	ErrMalformedRandFile = fmt.Errorf("malformed random file")
	ErrInvalidFrameCount = fmt.Errorf("invalid frame count")
	ErrUnknownAlgorithm  = fmt.Errorf("unknown replacement algorithm")
	ErrProcessIndex      = fmt.Errorf("process index out of range")
	ErrPageOutOfRange    = fmt.Errorf("virtual page out of range")
)

// Invariant wraps a programmer-error condition (an engine invariant that
// should never be violated, e.g. a policy returning a frame index out of
// range, or a present PTE whose frame disagrees about its tenant) with a
// captured stack trace so a fatal halt can be diagnosed after the fact.
func Invariant(format string, args ...interface{}) error {
	return goerrors.Wrap(fmt.Errorf(format, args...), 1)
}
