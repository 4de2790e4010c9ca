package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		kind Kind
		code string
	}{
		{ErrUnauthenticated, KindUnauthenticated, "Unauthenticated"},
		{ErrSessionNotFound, KindUnauthenticated, "Unauthenticated"},
		{ErrForbidden, KindForbidden, "Forbidden"},
		{fmt.Errorf("%w: username", ErrMissingField), KindValidation, "MissingField"},
		{fmt.Errorf("%q: %w", "bob", ErrDuplicateUsername), KindValidation, "DuplicateUsername"},
		{ErrUnknownRole, KindValidation, "UnknownRole"},
		{ErrUnknownTag, KindValidation, "UnknownTag"},
		{ErrEmptyContent, KindValidation, "EmptyContent"},
		{ErrAlreadyExists, KindValidation, "AlreadyExists"},
		{ErrNotFound, KindNotFound, "NotFound"},
		{ErrBadCredential, KindBadCredential, "BadCredential"},
		{fmt.Errorf("search: %w", ErrUpstream), KindUpstream, "UpstreamError"},
		{errors.New("disk full"), KindInternal, ""},
	}

	for _, tc := range cases {
		kind, code := Classify(tc.err)
		if kind != tc.kind || code != tc.code {
			t.Fatalf("Classify(%v) = %s/%s, want %s/%s", tc.err, kind, code, tc.kind, tc.code)
		}
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(fmt.Errorf("wrapped: %w", ErrForbidden)) != KindForbidden {
		t.Fatalf("expected KindForbidden for wrapped error")
	}
	if KindOf(nil) != KindInternal {
		t.Fatalf("expected KindInternal for nil")
	}
}
