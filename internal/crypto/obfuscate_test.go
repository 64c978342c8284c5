package crypto

import (
	"errors"
	"strings"
	"testing"
)

func TestObfuscatorRoundTrip(t *testing.T) {
	o := NewObfuscator()

	value := o.Obfuscate("AKIAEXAMPLESECRET", "passphrase")
	if !strings.HasPrefix(value, "enc:") {
		t.Fatalf("obfuscated value missing marker: %q", value)
	}
	if !o.IsObfuscated(value) {
		t.Fatal("IsObfuscated rejected its own output")
	}
	if strings.Contains(value, "EXAMPLE") {
		t.Fatal("obfuscated value leaks plaintext")
	}

	plain, err := o.Deobfuscate(value, "passphrase")
	if err != nil {
		t.Fatalf("deobfuscate: %v", err)
	}
	if plain != "AKIAEXAMPLESECRET" {
		t.Fatalf("round trip mismatch: got %q", plain)
	}
}

func TestObfuscatorEmptyValue(t *testing.T) {
	o := NewObfuscator()
	if got := o.Obfuscate("", "passphrase"); got != "" {
		t.Fatalf("empty plain should stay empty, got %q", got)
	}
}

func TestObfuscatorRejectsPlainValue(t *testing.T) {
	o := NewObfuscator()
	if _, err := o.Deobfuscate("not-marked", "passphrase"); !errors.Is(err, ErrNotObfuscated) {
		t.Fatalf("expected ErrNotObfuscated, got %v", err)
	}
}

func TestObfuscatorRejectsBadEncoding(t *testing.T) {
	o := NewObfuscator()
	if _, err := o.Deobfuscate("enc:!!not-base64!!", "passphrase"); err == nil {
		t.Fatal("expected decode failure")
	}
}
