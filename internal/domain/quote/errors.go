package quote

import (
	"fmt"
	"time"

	"lanerate/internal/errors"
)

// Fatal errors propagate to the caller with the failing stage attached.
// Provider errors are non-fatal: they trigger the next fallback tier and are
// absorbed at the component boundary, recorded only in source tags.
var (
	// ErrRouteUnavailable means every routing tier failed.
	ErrRouteUnavailable = errors.New("no routing provider produced a route")
	// ErrUnknownState marks a state code with no region mapping. Soft: it
	// degrades market intelligence only.
	ErrUnknownState = errors.New("unknown state code")
)

// ValidationError reports malformed caller input. Fatal.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
}

// GeocodeError reports an unresolvable address. Fatal: nothing downstream can
// run without coordinates.
type GeocodeError struct {
	Address string
	Err     error
}

func (e *GeocodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geocode %q: %v", e.Address, e.Err)
	}

	return fmt.Sprintf("geocode %q: no results", e.Address)
}

func (e *GeocodeError) Unwrap() error { return e.Err }

// ProviderError wraps a failed or timed-out external provider call. Both
// variants are treated identically by callers: advance to the next tier.
type ProviderError struct {
	Provider string
	Timeout  bool
	Err      error
}

func (e *ProviderError) Error() string {
	kind := "unavailable"
	if e.Timeout {
		kind = "timeout"
	}

	return fmt.Sprintf("provider %s %s: %v", e.Provider, kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderTimeout builds the timeout variant of ProviderError.
func NewProviderTimeout(provider string, d time.Duration) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Timeout:  true,
		Err:      errors.Errorf("no response within %s", d),
	}
}

// NewProviderUnavailable builds the unavailable variant of ProviderError.
func NewProviderUnavailable(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// IsProviderFailure reports whether err is a non-fatal provider failure that
// should trigger the next fallback tier.
func IsProviderFailure(err error) bool {
	var pe *ProviderError

	return errors.As(err, &pe)
}
