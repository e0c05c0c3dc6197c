package bind

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "vindex/internal/platform/errors"
)

// decodeBody mirrors the shape the decode endpoint binds
type decodeBody struct {
	VIN   string `json:"vin" validate:"required,min=11"`
	Force bool   `json:"force"`
}

const goodVIN = "1HGCM82633A004352"

func TestParseJSON_Success(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"vin":"`+goodVIN+`","force":true}`))
	got, err := ParseJSON[decodeBody](req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.VIN != goodVIN || !got.Force {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_EmptyBody_Disallow(t *testing.T) {
	req := httptest.NewRequest("POST", "/", http.NoBody)
	_, err := ParseJSON[decodeBody](req)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_EmptyBody_SafeMethodsTolerated(t *testing.T) {
	for _, method := range []string{"GET", "DELETE", "HEAD", "OPTIONS"} {
		req := httptest.NewRequest(method, "/", http.NoBody)
		got, err := ParseJSON[struct{}](req)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		_ = got
	}
}

func TestParseJSON_AllowEmptyBody_EOF_OK(t *testing.T) {
	type note struct {
		Note string `json:"note"`
	}
	req := httptest.NewRequest("POST", "/", http.NoBody)

	got, err := ParseJSON[note](req, JSONOptions{AllowEmptyBody: true})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if got != (note{}) {
		t.Fatalf("expected zero value, got %+v", got)
	}
}

func TestParseJSON_AllowEmptyBody_WithMaxBytes(t *testing.T) {
	type note struct {
		Note string `json:"note"`
	}
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))

	got, err := ParseJSON[note](req, JSONOptions{AllowEmptyBody: true, MaxBytes: 8})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if got != (note{}) {
		t.Fatalf("expected zero value, got %+v", got)
	}
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"vin":`))
	_, err := ParseJSON[decodeBody](req)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_UnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"vin":"`+goodVIN+`","bogus":1}`))
	_, err := ParseJSON[decodeBody](req) // DisallowUnknown defaults true
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error for unknown field, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_DisallowUnknownFalse_OK(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"vin":"`+goodVIN+`","extra":"ok"}`))
	got, err := ParseJSON[decodeBody](req, JSONOptions{DisallowUnknown: false})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if got.VIN != goodVIN {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestParseJSON_TrailingData_Seam(t *testing.T) {
	orig := decoderMore
	decoderMore = func(_ *json.Decoder) bool { return true }
	defer func() { decoderMore = orig }()

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"vin":"`+goodVIN+`"}`))
	_, err := ParseJSON[decodeBody](req)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error for trailing data, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_ValidationError(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"vin":"SHORT"}`))
	_, err := ParseJSON[decodeBody](req)
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("expected validation error code, got %v (%v)", perr.CodeOf(err), err)
	}
	if e, ok := perr.As(err); !ok || e.Field() != "vin" {
		t.Fatalf("expected failing field vin on the error, got %v", err)
	}
}

func TestParseJSON_SizeLimits(t *testing.T) {
	// no limit and generous limit both succeed
	for _, maxBytes := range []int64{0, 64} {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"vin":"`+goodVIN+`"}`))
		if _, err := ParseJSON[decodeBody](req, JSONOptions{MaxBytes: maxBytes, DisallowUnknown: true}); err != nil {
			t.Fatalf("maxBytes=%d: unexpected: %v", maxBytes, err)
		}
	}

	// tight limit truncates the body mid-token
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"vin":"`+goodVIN+`"}`))
	_, err := ParseJSON[decodeBody](req, JSONOptions{MaxBytes: 5, DisallowUnknown: true})
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error due to size limit, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_NonStructTarget(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`5`))
	_, err := ParseJSON[int](req) // validator.Struct on a non-struct
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON-coded error, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestBindJSON_Success(t *testing.T) {
	mw := JSON[decodeBody]()
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		p := FromContext[decodeBody](r)
		if p == nil {
			t.Fatalf("expected payload in context")
		}
		if p.VIN != goodVIN {
			t.Fatalf("unexpected payload: %+v", *p)
		}
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"vin":"`+goodVIN+`"}`))
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	if !nextCalled {
		t.Fatalf("expected next to be called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBindJSON_Error(t *testing.T) {
	mw := JSON[decodeBody]()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next should not be called on bind error")
	})
	req := httptest.NewRequest("POST", "/", http.NoBody)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) == "" {
		t.Fatalf("expected error body")
	}
}

func TestFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if v := FromContext[decodeBody](req); v != nil {
		t.Fatalf("expected nil when no payload present")
	}
}

func TestTagNameFunc_JsonTagNameUsed(t *testing.T) {
	Init()
	type s struct {
		Val int `json:"model_year,omitempty" validate:"min=1"`
	}
	err := Get().Validator.Struct(s{Val: 0})
	field, msg := ValidationFieldAndMessage(err)
	if field != "model_year" { // comma options trimmed
		t.Fatalf("expected field=model_year, got %s", field)
	}
	if !strings.Contains(msg, "at least") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestTagNameFunc_DashUsesFieldName(t *testing.T) {
	Init()
	type s struct {
		Secret int `json:"-" validate:"min=1"`
	}
	err := Get().Validator.Struct(s{Secret: 0})
	field, _ := ValidationFieldAndMessage(err)
	if field != "Secret" {
		t.Fatalf("expected field=Secret, got %s", field)
	}
}

func TestTagNameFunc_NoTagUsesFieldName(t *testing.T) {
	Init()
	type s struct {
		Plain int `validate:"min=1"`
	}
	err := Get().Validator.Struct(s{Plain: 0})
	field, _ := ValidationFieldAndMessage(err)
	if field != "Plain" {
		t.Fatalf("expected field=Plain, got %s", field)
	}
}

func TestValidationFieldAndMessage_GenericError(t *testing.T) {
	field, msg := ValidationFieldAndMessage(errors.New("boom"))
	if field != "" || msg != "boom" {
		t.Fatalf("expected generic passthrough, got field=%q msg=%q", field, msg)
	}
}

func TestShortTranslations_MinMax(t *testing.T) {
	Init()
	type s struct {
		Year int `json:"year" validate:"min=1980,max=2039"`
	}

	err := Get().Validator.Struct(s{Year: 1979})
	_, msg := ValidationFieldAndMessage(err)
	if msg != "year must be at least 1980" {
		t.Fatalf("unexpected min message: %q", msg)
	}

	err = Get().Validator.Struct(s{Year: 2040})
	_, msg = ValidationFieldAndMessage(err)
	if msg != "year must be at most 2039" {
		t.Fatalf("unexpected max message: %q", msg)
	}
}

func TestRegisterValidation_CustomTag(t *testing.T) {
	Init()

	if err := RegisterValidation("vin_len", func(fl FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && len(s) == 17
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	type s struct {
		VIN string `json:"vin" validate:"vin_len"`
	}
	if err := Get().Validator.Struct(s{VIN: goodVIN}); err != nil {
		t.Fatalf("expected 17-char vin to pass: %v", err)
	}
	if err := Get().Validator.Struct(s{VIN: "TOO_SHORT"}); err == nil {
		t.Fatalf("expected short vin to fail")
	}
}

func TestRegisterValidation_DuplicateTag_Overwrites(t *testing.T) {
	Init()

	if err := RegisterValidation("dupe_tag", func(fl FieldLevel) bool { return false }); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if err := RegisterValidation("dupe_tag", func(fl FieldLevel) bool { return true }); err != nil {
		t.Fatalf("unexpected error on second register: %v", err)
	}

	type s struct {
		N int `json:"n" validate:"dupe_tag"`
	}
	if err := Get().Validator.Struct(s{N: 0}); err != nil {
		t.Fatalf("expected validation to pass after overwrite, got %v", err)
	}
}
