// Package jwperr defines the stable error taxonomy shared by every layer of
// the JWP/JPT core: codec, flattening, key handling, the proof engine, and
// the Issued/Presented state machines.
package jwperr

import (
	"errors"
	"fmt"
)

// Kind identifies one of the stable error categories a caller can switch on.
type Kind string

const (
	KindProofGeneration      Kind = "PROOF_GENERATION"
	KindProofVerification    Kind = "PROOF_VERIFICATION"
	KindInvalidIssuedProof   Kind = "INVALID_ISSUED_PROOF"
	KindInvalidPresentedProof Kind = "INVALID_PRESENTED_PROOF"
	KindInvalidIssuedJwp     Kind = "INVALID_ISSUED_JWP"
	KindInvalidPresentedJwp  Kind = "INVALID_PRESENTED_JWP"
	KindIndexOutOfBounds     Kind = "INDEX_OUT_OF_BOUNDS"
	KindIncompleteJwpBuild   Kind = "INCOMPLETE_JWP_BUILD"
	KindFlattening           Kind = "FLATTENING_ERROR"
	KindSelectiveDisclosure  Kind = "SELECTIVE_DISCLOSURE_ERROR"
	KindSerialization        Kind = "SERIALIZATION_ERROR"
	KindJwkGeneration        Kind = "JWK_GENERATION_ERROR"
	KindCurveNotSupported    Kind = "CURVE_NOT_SUPPORTED"
	KindNotImplemented       Kind = "NOT_IMPLEMENTED"
)

// Reason refines KindIncompleteJwpBuild per spec.md §7.
type Reason string

const (
	ReasonNoIssuerHeader       Reason = "no_issuer_header"
	ReasonNoPresentationHeader Reason = "no_presentation_header"
	ReasonNoClaimsAndPayloads  Reason = "no_claims_and_payloads"
	ReasonNoJwk                Reason = "no_jwk"
)

// Error is the structured error type every core package returns instead of
// a bare string or a panic.
type Error struct {
	Kind    Kind
	Reason  Reason // only meaningful when Kind == KindIncompleteJwpBuild
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s(%s): %s", e.Kind, e.Reason, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around an existing cause.
func Wrap(cause error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Wrapf builds an Error around an existing cause with a formatted message.
func Wrapf(cause error, kind Kind, format string, args ...any) *Error {
	return Wrap(cause, kind, fmt.Sprintf(format, args...))
}

// Incomplete builds the IncompleteJwpBuild error for a specific missing
// builder input.
func Incomplete(reason Reason) *Error {
	return &Error{Kind: KindIncompleteJwpBuild, Reason: reason, Message: string(reason)}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// As extracts the *Error from err, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
