package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestGate(t *testing.T) *Gate {
	t.Helper()
	gate, err := NewFromPassword("hunter2", []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("NewFromPassword: %v", err)
	}
	return gate
}

func TestLoginAndVerify(t *testing.T) {
	gate := newTestGate(t)

	token, err := gate.Login("hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if err := gate.Verify(token); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	gate := newTestGate(t)

	if _, err := gate.Login("wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("error = %v, want ErrInvalidPassword", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	gate := newTestGate(t)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if err := gate.Verify(token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Verify(%q) = %v, want ErrUnauthorized", token, err)
		}
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	gate := newTestGate(t)
	other, err := NewFromPassword("hunter2", []byte("different-secret"), time.Hour)
	if err != nil {
		t.Fatalf("NewFromPassword: %v", err)
	}

	token, err := other.Login("hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := gate.Verify(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("foreign token error = %v, want ErrUnauthorized", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	gate, err := NewFromPassword("hunter2", []byte("test-secret"), -time.Minute)
	if err != nil {
		t.Fatalf("NewFromPassword: %v", err)
	}

	token, err := gate.Login("hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := gate.Verify(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expired token error = %v, want ErrUnauthorized", err)
	}
}

func TestAuthenticatedReadsCookie(t *testing.T) {
	gate := newTestGate(t)

	token, err := gate.Login("hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if gate.Authenticated(r) {
		t.Error("request without cookie should not be authenticated")
	}

	r.AddCookie(gate.Cookie(token))
	if !gate.Authenticated(r) {
		t.Error("request with valid cookie should be authenticated")
	}
}

func TestCookieAttributes(t *testing.T) {
	gate := newTestGate(t)

	cookie := gate.Cookie("token-value")
	if cookie.Name != CookieName || !cookie.HttpOnly || cookie.Path != "/" {
		t.Errorf("cookie = %+v", cookie)
	}
	if cookie.MaxAge != int(time.Hour/time.Second) {
		t.Errorf("cookie max age = %d", cookie.MaxAge)
	}

	cleared := gate.ClearCookie()
	if cleared.MaxAge >= 0 || cleared.Value != "" {
		t.Errorf("cleared cookie = %+v", cleared)
	}
}
