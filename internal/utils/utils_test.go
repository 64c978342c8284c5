package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestDigestIsDeterministic(t *testing.T) {
	a := Digest([]byte("payload"))
	b := Digest([]byte("payload"))
	if a != b {
		t.Fatalf("same input produced different digests: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("digest is not sha256 hex: %q", a)
	}
	if Digest([]byte("other")) == a {
		t.Fatal("different inputs produced the same digest")
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	got := TokenExpiry(token)
	if !got.Equal(exp) {
		t.Fatalf("expiry = %v, want %v", got, exp)
	}
}

func TestTokenExpiryNonJWT(t *testing.T) {
	for _, token := range []string{"", "opaque-token", "a.b", "not.a.jwt"} {
		if got := TokenExpiry(token); !got.IsZero() {
			t.Fatalf("token %q: expected zero time, got %v", token, got)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	if _, err := WriteJSON(rec, map[string]string{"status": "ok"}, 201); err != nil {
		t.Fatalf("write json: %v", err)
	}

	if rec.Code != 201 {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	if body := rec.Body.String(); body != `{"status":"ok"}` {
		t.Fatalf("body = %q", body)
	}
}

func TestUUIDGenerator(t *testing.T) {
	g := NewUUIDGenerator()
	a := g.Generate()
	b := g.Generate()
	if a == "" || a == b {
		t.Fatalf("generator not producing unique ids: %q %q", a, b)
	}
}
