// Package fault classifies the failures surfaced by the entry model, the provider adapters and the list cache.
package fault

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the category of a failure. Callers branch on it to decide whether to retry,
// re-enter credentials or give up.
type Kind int

const (
	// Transport is a network or HTTP failure. It is never retried by the engine.
	Transport Kind = iota + 1
	// Protocol is a malformed or unmapped provider response.
	Protocol
	// Auth covers invalid credentials, a wrong-account mismatch and declined reauthorization.
	Auth
	// Validation is a local invariant violation.
	Validation
	// Rejected means the provider refused a business operation, such as a duplicate add.
	Rejected
)

func (k Kind) String() string {
	switch k {
	case Transport:
		return "transport"
	case Protocol:
		return "protocol"
	case Auth:
		return "auth"
	case Validation:
		return "validation"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Error is a classified failure.
type Error struct {
	Kind     Kind
	Provider string
	err      error
}

func (e *Error) Error() string {
	if e.Provider == "" {
		return e.err.Error()
	}
	return e.Provider + ": " + e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

var (
	// ErrAuthRequired is returned when the user declines to supply a new authorization secret.
	ErrAuthRequired = &Error{Kind: Auth, err: errors.New("authorization required")}

	// ErrSyncInProgress is returned when Sync is called while another Sync runs on the same list.
	ErrSyncInProgress = errors.New("sync already in progress")
)

// New returns a classified error with a formatted message.
func New(kind Kind, provider, format string, args ...any) error {
	return &Error{Kind: kind, Provider: provider, err: errors.New(fmt.Sprintf(format, args...))}
}

// Wrap classifies err, annotating it with msg. A nil err yields nil.
// An error that is already classified keeps its kind.
func Wrap(kind Kind, provider string, err error, msg string) error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return errors.WithMessage(err, msg)
	}

	return &Error{Kind: kind, Provider: provider, err: errors.Wrap(err, msg)}
}

// KindOf reports the kind of err, or 0 when err is not classified.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return 0
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
