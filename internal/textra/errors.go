// Package textra is a client for the TexTra machine-translation API:
// it exchanges OAuth2 client credentials for a cached access token and
// drives the ja->en translation endpoint, mapping every failure into a
// small fixed set of error kinds.
package textra

import (
	"errors"
	"fmt"
)

// Kind classifies a translation failure. Every error returned by this
// package carries exactly one kind; callers branch on it, the message
// stays human-readable.
type Kind int

const (
	// KindConfiguration: a required setting was missing at the point
	// of use. No I/O was attempted.
	KindConfiguration Kind = iota + 1
	// KindAuthentication: the token exchange failed, or succeeded
	// without yielding a usable access token. The token cache has
	// been cleared.
	KindAuthentication
	// KindNetwork: transport failure while calling the translation
	// endpoint.
	KindNetwork
	// KindRemoteAPI: the translation endpoint answered with a
	// non-zero result code.
	KindRemoteAPI
	// KindUnexpected: anything else (malformed response body,
	// programming error).
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindAuthentication:
		return "authentication"
	case KindNetwork:
		return "network"
	case KindRemoteAPI:
		return "remote_api"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by this package.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the Kind from err, or KindUnexpected when err did
// not originate in this package.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUnexpected
}
