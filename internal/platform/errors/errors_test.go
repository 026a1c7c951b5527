package errors_test

import (
	stderrs "errors"
	"net/http"
	"testing"

	perr "github.com/lambilly/hass-tian-free/internal/platform/errors"
)

func TestWrapPreservesCauseAndCode(t *testing.T) {
	cause := stderrs.New("boom")
	err := perr.Wrap(cause, perr.ErrorCodeTransport, "fetch joke")

	if got := perr.CodeOf(err); got != perr.ErrorCodeTransport {
		t.Fatalf("CodeOf = %v, want Transport", got)
	}
	if !stderrs.Is(err, cause) {
		t.Fatalf("wrapped cause lost")
	}
	if root := perr.Root(err); root != cause {
		t.Fatalf("Root = %v, want cause", root)
	}
	if got := err.Error(); got != "fetch joke: boom" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code perr.ErrorCode
		want int
	}{
		{perr.ErrorCodeNotFound, http.StatusNotFound},
		{perr.ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{perr.ErrorCodeValidation, http.StatusBadRequest},
		{perr.ErrorCodeJSON, http.StatusBadRequest},
		{perr.ErrorCodeInvalidCredential, http.StatusUnauthorized},
		{perr.ErrorCodeRateLimited, http.StatusTooManyRequests},
		{perr.ErrorCodeTimeout, http.StatusServiceUnavailable},
		{perr.ErrorCodeTransport, http.StatusServiceUnavailable},
		{perr.ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{perr.ErrorCodeApplication, http.StatusInternalServerError},
		{perr.ErrorCodeUnknown, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := perr.HTTPStatusCode(tc.code); got != tc.want {
			t.Errorf("HTTPStatusCode(%v) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestWireFromPlainError(t *testing.T) {
	w := perr.WireFrom(stderrs.New("nope"))
	if w.Code != perr.ErrorCodeUnknown || w.Message != "nope" {
		t.Fatalf("WireFrom = %+v", w)
	}
	if w := perr.WireFrom(nil); w != (perr.Wire{}) {
		t.Fatalf("WireFrom(nil) = %+v, want zero", w)
	}
}

func TestWithUpstreamCopyOnWrite(t *testing.T) {
	base := perr.RateLimitedf("quota exceeded")
	tagged := perr.WithUpstream(base, 130)

	e, ok := perr.As(tagged)
	if !ok {
		t.Fatalf("As failed")
	}
	if e.Upstream() != 130 {
		t.Fatalf("Upstream = %d, want 130", e.Upstream())
	}
	orig, _ := perr.As(base)
	if orig.Upstream() != 0 {
		t.Fatalf("original mutated, Upstream = %d", orig.Upstream())
	}
}

func TestWithFieldOnForeignError(t *testing.T) {
	plain := stderrs.New("plain")
	if got := perr.WithField(plain, "interval_minutes"); got != plain {
		t.Fatalf("WithField on foreign error should return unchanged")
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{perr.Timeoutf("deadline"), true},
		{perr.Transportf("conn refused"), true},
		{perr.RateLimitedf("quota"), true},
		{perr.Unavailablef("down"), true},
		{perr.InvalidCredentialf("bad key"), false},
		{perr.MalformedPayloadf("no result"), false},
		{perr.Applicationf("code 250"), false},
		{stderrs.New("plain"), false},
		{nil, false},
	}
	for i, tc := range cases {
		if got := perr.Retryable(tc.err); got != tc.want {
			t.Errorf("case %d: Retryable(%v) = %v, want %v", i, tc.err, got, tc.want)
		}
	}
}

func TestWrapIf(t *testing.T) {
	if err := perr.WrapIf(nil, perr.ErrorCodeJSON, "decode"); err != nil {
		t.Fatalf("WrapIf(nil) = %v", err)
	}
	err := perr.WrapIf(stderrs.New("eof"), perr.ErrorCodeJSON, "decode")
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("WrapIf code = %v", perr.CodeOf(err))
	}
}
