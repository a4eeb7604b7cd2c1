// Package source fetches raw quotes from the 27 external providers and
// normalizes them into ratemodel.Rate values. Providers differ in wire
// shape, not in fetch logic, so they collapse onto a small set of
// AdapterKind implementations driven by a per-source registry (see
// kinds.go).
package source

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// ErrKind classifies an adapter failure so the collector can log and
// count failures by cause without string-matching error text.
type ErrKind int

const (
	// ErrTransport covers connection, TLS, timeout and non-2xx status
	// failures - the request never produced a body worth decoding.
	ErrTransport ErrKind = iota
	// ErrDecode covers a response body that doesn't parse as the shape
	// the adapter expects (bad JSON, bad XML, missing HTML nodes).
	ErrDecode
	// ErrNoRates covers a response that decoded fine but yielded zero
	// usable rates (every row failed HasUsableSide).
	ErrNoRates
	// ErrInvalidRateType covers a response row whose rate-type tag
	// doesn't map to any ratemodel.RateType.
	ErrInvalidRateType
	// ErrConfig covers a registry entry missing a field its kind needs
	// (e.g. a KindJSONFeedWithCross entry with no CrossCurrency), or a
	// KindCommissionWrapped entry whose BaseSource has no registry entry.
	ErrConfig
)

func (k ErrKind) String() string {
	switch k {
	case ErrTransport:
		return "transport"
	case ErrDecode:
		return "decode"
	case ErrNoRates:
		return "no_rates"
	case ErrInvalidRateType:
		return "invalid_rate_type"
	case ErrConfig:
		return "config"
	default:
		return "unknown"
	}
}

// AdapterError wraps a cause with the ErrKind the collector dispatches
// on. The cause keeps its pkg/errors stack trace for %+v logging.
type AdapterError struct {
	Kind ErrKind
	Err  error
}

func (e *AdapterError) Error() string { return fmt.Sprintf("%s: %v", e.Kind, e.Err) }
func (e *AdapterError) Unwrap() error { return e.Err }

func wrapErr(kind ErrKind, cause error, format string, args ...interface{}) error {
	return &AdapterError{Kind: kind, Err: errors.Wrapf(cause, format, args...)}
}

func newErr(kind ErrKind, format string, args ...interface{}) error {
	return &AdapterError{Kind: kind, Err: errors.Errorf(format, args...)}
}

// KindOf reports the ErrKind an error was tagged with, or false if it was
// never produced by this package.
func KindOf(err error) (ErrKind, bool) {
	var ae *AdapterError
	if stderrors.As(err, &ae) {
		return ae.Kind, true
	}
	return 0, false
}
