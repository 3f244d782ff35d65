package timestamp

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat indicates the input matched none of the supported grammars.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrOutOfRange indicates the parsed components do not form a valid calendar date or time.
	ErrOutOfRange = errors.New("out of range")
)

// ErrorKind classifies errors returned by Parse, StartOf and ParseStart.
type ErrorKind int

// Error kinds visible to callers.
const (
	KindNone ErrorKind = iota
	KindUnknownFormat
	KindOutOfRange
)

// String returns a short label for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUnknownFormat:
		return "unknown_format"
	case KindOutOfRange:
		return "out_of_range"
	default:
		return "none"
	}
}

// Kind reports which taxonomy member err belongs to. Errors that are not
// produced by this package report KindNone.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnknownFormat):
		return KindUnknownFormat
	case errors.Is(err, ErrOutOfRange):
		return KindOutOfRange
	default:
		return KindNone
	}
}

// RangeError describes a component rejected by calendar validation.
type RangeError struct {
	Component string
	Value     int
	Min       int
	Max       int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be in the range %d..%d, got %d", e.Component, e.Min, e.Max, e.Value)
}

// Is lets errors.Is(err, ErrOutOfRange) match a bare RangeError.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Reason classifies why a single grammar failed to match.
type Reason int

// Matcher failure reasons.
const (
	// ReasonFormat means the input diverged from the grammar.
	ReasonFormat Reason = iota + 1
	// ReasonMissingInformation means the grammar matched but a required field was not recovered.
	ReasonMissingInformation
	// ReasonRemainingInformation means the grammar matched a prefix and input was left over.
	ReasonRemainingInformation
)

func (r Reason) String() string {
	switch r {
	case ReasonFormat:
		return "format error"
	case ReasonMissingInformation:
		return "missing information"
	case ReasonRemainingInformation:
		return "remaining input"
	default:
		return "unknown reason"
	}
}

// MatchError is returned by the individual grammar matchers. Parse and
// ParseStart never return it; they collapse matcher failures into
// ErrUnknownFormat.
type MatchError struct {
	Reason    Reason
	Component string
	Offset    int
}

func (e *MatchError) Error() string {
	if e.Reason == ReasonFormat && e.Component != "" {
		return fmt.Sprintf("%s: invalid %s at offset %d", e.Reason, e.Component, e.Offset)
	}
	if e.Reason == ReasonRemainingInformation {
		return fmt.Sprintf("%s at offset %d", e.Reason, e.Offset)
	}
	return e.Reason.String()
}
