package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("unexpected hash format: %s", hash)
	}
	if err := Verify("correct horse battery staple", hash); err != nil {
		t.Errorf("Verify with correct password: %v", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	hash, err := Hash("pw1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if err := Verify("pw2", hash); err != ErrMismatch {
		t.Errorf("expected ErrMismatch, got: %v", err)
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=1,p=4$only-four-parts",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	}
	for _, c := range cases {
		if err := Verify("pw", c); err != ErrMalformedHash {
			t.Errorf("Verify(%q): expected ErrMalformedHash, got: %v", c, err)
		}
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	h1, err := Hash("same password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := Hash("same password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
	if err := Verify("same password", h2); err != nil {
		t.Errorf("Verify second hash: %v", err)
	}
}
