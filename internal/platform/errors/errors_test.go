package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestError_RenderAndUnwrap(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(ErrorCodeValidation, "vin failed validation")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json at byte %d", 12)
	if got := e2.Error(); got != "bad json at byte 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeDB, "cache read failed")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep the cause")
	}
	if CodeOf(e3) != ErrorCodeDB {
		t.Fatalf("CodeOf(Wrap) = %v", CodeOf(e3))
	}

	// Error() renders "msg: orig"
	e4 := Wrapf(src, ErrorCodeUnavailable, "upstream %s", "down")
	if want := "upstream down: root"; e4.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e4.Error(), want)
	}
}

func TestError_AsAndMutators(t *testing.T) {
	src := stderrs.New("root")

	e := Wrapf(src, ErrorCodeUnavailable, "upstream down")
	if got, ok := As(e); !ok || got.Code() != ErrorCodeUnavailable {
		t.Fatalf("As() failed for project error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	base := Wrap(src, ErrorCodeInvalidArgument, "oops")
	withField := WithField(base, "vin")
	withOp := WithOp(withField, "decode")
	if fe, ok := As(withField); !ok || fe.Field() != "vin" {
		t.Fatalf("WithField failed")
	}
	if oe, ok := As(withOp); !ok || oe.Op() != "decode" {
		t.Fatalf("WithOp failed")
	}
	// copy-on-write: the base error stays untouched
	if b, _ := As(base); b.Field() != "" || b.Op() != "" {
		t.Fatalf("copy-on-write mutated original")
	}
	// foreign errors pass through unchanged
	if WithField(src, "x") != src || WithOp(src, "y") != src {
		t.Fatalf("mutators should pass foreign errors through")
	}
}

func TestWireMapping(t *testing.T) {
	src := stderrs.New("root")

	w := (&Error{code: ErrorCodeValidation, msg: "check digit mismatch", field: "vin"}).ToWire()
	if w.Code != ErrorCodeValidation || w.Message != "check digit mismatch" || w.Field != "vin" {
		t.Fatalf("ToWire mismatch: %+v", w)
	}
	if wf := WireFrom(nil); wf != (Wire{}) {
		t.Fatalf("WireFrom(nil) expected zero, got %+v", wf)
	}
	if wf := WireFrom(src); wf.Code != ErrorCodeUnknown || wf.Message != "root" {
		t.Fatalf("WireFrom(foreign) mismatch: %+v", wf)
	}
	// wire message is e.msg alone, without the wrapped cause
	e := Wrapf(src, ErrorCodeUnavailable, "upstream down")
	if wf := WireFrom(e); wf.Code != ErrorCodeUnavailable || wf.Message != "upstream down" {
		t.Fatalf("WireFrom(ours) mismatch: %+v", wf)
	}

	if st, _ := HTTP(nil); st != http.StatusOK {
		t.Fatalf("HTTP(nil) status = %d", st)
	}
	if st := HTTPStatus(Wrap(src, ErrorCodeDB, "x")); st != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus mismatch")
	}
}

func TestSugarAndRoot(t *testing.T) {
	if !IsCode(NotFoundf("x"), ErrorCodeNotFound) ||
		!IsCode(InvalidArgf("x"), ErrorCodeInvalidArgument) ||
		!IsCode(Validationf("x"), ErrorCodeValidation) ||
		!IsCode(DBf("x"), ErrorCodeDB) ||
		!IsCode(JSONErrf("x"), ErrorCodeJSON) ||
		!IsCode(PanicErrf("x"), ErrorCodePanic) ||
		!IsCode(Unavailablef("x"), ErrorCodeUnavailable) {
		t.Fatalf("sugar helpers code mismatch")
	}

	src := stderrs.New("root")
	deep := fmt.Errorf("level2: %w", fmt.Errorf("level1: %w", src))
	if got := Root(deep); got == nil || got.Error() != "root" {
		t.Fatalf("Root() failed, got %v", got)
	}
	if Root(nil) != nil {
		t.Fatalf("Root(nil) should be nil")
	}

	if !IsCode(ErrNotFound, ErrorCodeNotFound) {
		t.Fatalf("ErrNotFound code mismatch")
	}
}
