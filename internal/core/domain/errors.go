package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("not logged in")
	ErrForbidden       = errors.New("access forbidden")

	ErrMissingField      = errors.New("missing required field")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUnknownRole       = errors.New("unknown role")
	ErrUnknownTag        = errors.New("tag does not exist")
	ErrEmptyContent      = errors.New("content is empty")
	ErrAlreadyExists     = errors.New("already exists")

	ErrNotFound      = errors.New("user not found")
	ErrBadCredential = errors.New("invalid credentials")
	ErrUpstream      = errors.New("upstream request failed")

	ErrSessionNotFound = errors.New("session not found")
)

// Kind groups errors the way callers are expected to react to them.
type Kind string

const (
	KindUnauthenticated Kind = "Unauthenticated"
	KindForbidden       Kind = "Forbidden"
	KindValidation      Kind = "Validation"
	KindNotFound        Kind = "NotFound"
	KindBadCredential   Kind = "BadCredential"
	KindUpstream        Kind = "UpstreamError"
	KindInternal        Kind = "Internal"
)

type classified struct {
	err  error
	kind Kind
	code string
}

// taxonomy is checked in order; the first errors.Is match wins.
var taxonomy = []classified{
	{ErrUnauthenticated, KindUnauthenticated, "Unauthenticated"},
	{ErrSessionNotFound, KindUnauthenticated, "Unauthenticated"},
	{ErrForbidden, KindForbidden, "Forbidden"},
	{ErrMissingField, KindValidation, "MissingField"},
	{ErrDuplicateUsername, KindValidation, "DuplicateUsername"},
	{ErrUnknownRole, KindValidation, "UnknownRole"},
	{ErrUnknownTag, KindValidation, "UnknownTag"},
	{ErrEmptyContent, KindValidation, "EmptyContent"},
	{ErrAlreadyExists, KindValidation, "AlreadyExists"},
	{ErrNotFound, KindNotFound, "NotFound"},
	{ErrBadCredential, KindBadCredential, "BadCredential"},
	{ErrUpstream, KindUpstream, "UpstreamError"},
}

// Classify returns the kind and the specific code of err. Errors outside the
// taxonomy are KindInternal with an empty code.
func Classify(err error) (Kind, string) {
	for _, c := range taxonomy {
		if errors.Is(err, c.err) {
			return c.kind, c.code
		}
	}
	return KindInternal, ""
}

// KindOf returns only the kind of err.
func KindOf(err error) Kind {
	k, _ := Classify(err)
	return k
}
