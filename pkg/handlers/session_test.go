package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var testKey = []byte("test-signing-key")

// TestSignVerifyRoundTrip ensures signed values verify and tampered ones
// do not.
func TestSignVerifyRoundTrip(t *testing.T) {
	signed := signValue("user", testKey)
	v, ok := verifyValue(signed, testKey)
	if !ok || v != "user" {
		t.Fatalf("round trip failed: %q %v", v, ok)
	}
	if _, ok := verifyValue("user|forged", testKey); ok {
		t.Fatal("forged signature accepted")
	}
	if _, ok := verifyValue(strings.Replace(signed, "user", "root", 1), testKey); ok {
		t.Fatal("tampered value accepted")
	}
	if _, ok := verifyValue(signed, []byte("other-key")); ok {
		t.Fatal("wrong key accepted")
	}
}

// TestCreateSessionSetsCookies checks the session endpoint issues the
// signed user cookie and a CSRF token.
func TestCreateSessionSetsCookies(t *testing.T) {
	app := &Application{SignKey: testKey}
	req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(`{"user_id":"alice"}`))
	rr := httptest.NewRecorder()
	app.CreateSession(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var userCookie, csrfCookie bool
	for _, c := range rr.Result().Cookies() {
		switch c.Name {
		case userCookieName:
			if v, ok := verifyValue(c.Value, testKey); !ok || v != "alice" {
				t.Errorf("bad user cookie: %q", c.Value)
			}
			userCookie = true
		case "csrf_token":
			csrfCookie = true
		}
	}
	if !userCookie || !csrfCookie {
		t.Fatalf("missing cookies: user=%v csrf=%v", userCookie, csrfCookie)
	}
}

// TestCreateSessionRejectsBadUser rejects empty and separator-carrying
// user names.
func TestCreateSessionRejectsBadUser(t *testing.T) {
	app := &Application{SignKey: testKey}
	for _, body := range []string{`{}`, `{"user_id":"a|b"}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(body))
		rr := httptest.NewRecorder()
		app.CreateSession(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, rr.Code)
		}
	}
}

// TestRequireUserCSRF ensures state-changing requests need the CSRF token.
func TestRequireUserCSRF(t *testing.T) {
	app := &Application{SignKey: testKey}
	req := httptest.NewRequest(http.MethodPost, "/api/favorites", nil)
	req.AddCookie(&http.Cookie{Name: userCookieName, Value: signValue("u", testKey)})
	rr := httptest.NewRecorder()
	if _, ok := app.requireUser(rr, req); ok {
		t.Fatal("expected CSRF rejection")
	}
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}

	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "tok"})
	req.Header.Set("X-CSRF-Token", "tok")
	rr = httptest.NewRecorder()
	if id, ok := app.requireUser(rr, req); !ok || id != "u" {
		t.Fatalf("expected success, got %q %v (%d)", id, ok, rr.Code)
	}
}
