package providers

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownProvider is returned by the registry for providers outside
// the supported set.
var ErrUnknownProvider = errors.New("unknown provider")

// Kind classifies adapter failures.
type Kind string

const (
	KindMissingCredential Kind = "missing_credential"
	KindTimeout           Kind = "timeout"
	KindTransport         Kind = "transport"
	KindRejected          Kind = "provider_rejected"
	KindUnsupported       Kind = "unsupported_operation"
)

// Error is the only error type adapters return. PartialID carries
// whatever provider-side resource was created before a multi-step
// operation failed, so callers can still record it.
type Error struct {
	Provider  Name
	Op        string
	Kind      Kind
	Message   string
	PartialID string
	Err       error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %s", e.Provider, e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func missingCredential(provider Name, op string) *Error {
	return &Error{
		Provider: provider,
		Op:       op,
		Kind:     KindMissingCredential,
		Message:  "missing credential: no API token configured",
	}
}

func unsupported(provider Name, op string) *Error {
	return &Error{
		Provider: provider,
		Op:       op,
		Kind:     KindUnsupported,
		Message:  fmt.Sprintf("provider does not support %s", op),
	}
}

// transportError wraps a failed round trip, distinguishing timeouts from
// other transport failures.
func transportError(provider Name, op string, err error) *Error {
	kind := KindTransport
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}

	return &Error{
		Provider: provider,
		Op:       op,
		Kind:     kind,
		Message:  err.Error(),
		Err:      err,
	}
}

func rejected(provider Name, op, message string) *Error {
	return &Error{
		Provider: provider,
		Op:       op,
		Kind:     KindRejected,
		Message:  message,
	}
}

// ErrorKind extracts the failure kind from an adapter error chain, or ""
// for non-adapter errors.
func ErrorKind(err error) Kind {
	var adapterErr *Error
	if errors.As(err, &adapterErr) {
		return adapterErr.Kind
	}
	return ""
}

// PartialID returns the partially created resource id carried by an
// adapter error, if any.
func PartialID(err error) string {
	var adapterErr *Error
	if errors.As(err, &adapterErr) {
		return adapterErr.PartialID
	}
	return ""
}

// IsUnsupported reports whether err means the provider offers no such
// operation at all, as opposed to the operation having failed.
func IsUnsupported(err error) bool {
	return ErrorKind(err) == KindUnsupported
}
