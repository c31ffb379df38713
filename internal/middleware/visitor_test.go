package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestVisitorAssignsCookie(t *testing.T) {
	var seen string
	h := Visitor(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = VisitorIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != VisitorCookie {
		t.Fatalf("expected visitor cookie, got %v", cookies)
	}
	if cookies[0].Value != seen {
		t.Fatalf("cookie %q does not match context %q", cookies[0].Value, seen)
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("visitor id %q is not a uuid: %v", seen, err)
	}
}

func TestVisitorKeepsValidCookie(t *testing.T) {
	id := uuid.NewString()
	var seen string
	h := Visitor(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = VisitorIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: id})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seen != id {
		t.Fatalf("visitor id = %q, want %q", seen, id)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatal("valid cookie should not be reissued")
	}
}

func TestVisitorReplacesMalformedCookie(t *testing.T) {
	var seen string
	h := Visitor(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = VisitorIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: "../../etc"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seen == "../../etc" || seen == "" {
		t.Fatalf("malformed cookie kept: %q", seen)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || !cookies[0].Secure {
		t.Fatalf("expected a fresh secure cookie, got %v", cookies)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if seen != "abc-123" || rr.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("request id not propagated: ctx=%q header=%q", seen, rr.Header().Get("X-Request-ID"))
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected generated request id")
	}
}
