package secrets

import (
	"bytes"
	"errors"
	"testing"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
)

// testParams keeps Argon2 cheap enough for unit tests.
var testParams = KDFParams{Time: 1, Memory: 64, Threads: 1}

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{7}, SaltLength)

	k1, err := DeriveKey([]byte("hunter2"), salt, testParams)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	k2, err := DeriveKey([]byte("hunter2"), salt, testParams)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}

	if len(k1) != KeyLength {
		t.Errorf("expected %d byte key, got %d", KeyLength, len(k1))
	}
	if !bytes.Equal(k1, k2) {
		t.Error("same inputs produced different keys")
	}
}

func TestDeriveKey_InputsChangeKey(t *testing.T) {
	salt := bytes.Repeat([]byte{7}, SaltLength)
	base, _ := DeriveKey([]byte("hunter2"), salt, testParams)

	otherPass, _ := DeriveKey([]byte("hunter3"), salt, testParams)
	if bytes.Equal(base, otherPass) {
		t.Error("different passphrase produced the same key")
	}

	otherSalt, _ := DeriveKey([]byte("hunter2"), bytes.Repeat([]byte{8}, SaltLength), testParams)
	if bytes.Equal(base, otherSalt) {
		t.Error("different salt produced the same key")
	}

	otherParams, _ := DeriveKey([]byte("hunter2"), salt, KDFParams{Time: 2, Memory: 64, Threads: 1})
	if bytes.Equal(base, otherParams) {
		t.Error("different time cost produced the same key")
	}
}

func TestDeriveKey_EmptyPassphraseAllowed(t *testing.T) {
	salt := bytes.Repeat([]byte{1}, SaltLength)
	if _, err := DeriveKey(nil, salt, testParams); err != nil {
		t.Fatalf("empty passphrase should derive a key, got: %v", err)
	}
}

func TestDeriveKey_RejectsBadParameters(t *testing.T) {
	salt := bytes.Repeat([]byte{1}, SaltLength)

	tests := []struct {
		name   string
		salt   []byte
		params KDFParams
	}{
		{"short salt", []byte("short"), testParams},
		{"zero time", salt, KDFParams{Time: 0, Memory: 64, Threads: 1}},
		{"huge time", salt, KDFParams{Time: MaxKDFTime + 1, Memory: 64, Threads: 1}},
		{"zero threads", salt, KDFParams{Time: 1, Memory: 64, Threads: 0}},
		{"memory below lanes", salt, KDFParams{Time: 1, Memory: 15, Threads: 2}},
		{"memory above cap", salt, KDFParams{Time: 1, Memory: MaxKDFMemory + 1, Threads: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveKey([]byte("pw"), tt.salt, tt.params)
			if !errors.Is(err, kerrors.ErrKeyDerivation) {
				t.Errorf("expected ErrKeyDerivation, got %v", err)
			}
		})
	}
}

func TestDefaultKDFParams_Valid(t *testing.T) {
	if err := DefaultKDFParams().Validate(); err != nil {
		t.Fatalf("default parameters must validate: %v", err)
	}
}

func TestKDFLimitFor(t *testing.T) {
	tests := []struct {
		name       string
		configured KDFParams
		want       KDFParams
	}{
		{"zero uses default", KDFParams{}, KDFParams{Time: 4, Memory: 128 * 1024, Threads: 8}},
		{"lighter than default", testParams, KDFParams{Time: 4, Memory: 128 * 1024, Threads: 8}},
		{"heavier than default", KDFParams{Time: 3, Memory: 256 * 1024, Threads: 2}, KDFParams{Time: 12, Memory: 512 * 1024, Threads: 8}},
		{"capped", KDFParams{Time: MaxKDFTime, Memory: MaxKDFMemory, Threads: 200}, KDFParams{Time: MaxKDFTime, Memory: MaxKDFMemory, Threads: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KDFLimitFor(tt.configured); got != tt.want {
				t.Errorf("KDFLimitFor(%+v) = %+v, want %+v", tt.configured, got, tt.want)
			}
		})
	}
}

func TestNewSaltAndNonce_AreRandom(t *testing.T) {
	s1, err := NewSalt()
	if err != nil {
		t.Fatal(err)
	}
	s2, _ := NewSalt()
	if len(s1) != SaltLength || bytes.Equal(s1, s2) {
		t.Errorf("salts should be %d random bytes", SaltLength)
	}

	n1, err := NewNonce()
	if err != nil {
		t.Fatal(err)
	}
	n2, _ := NewNonce()
	if len(n1) != NonceLength || bytes.Equal(n1, n2) {
		t.Errorf("nonces should be %d random bytes", NonceLength)
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{3}, KeyLength)
	nonce, _ := NewNonce()
	ad := []byte("header")

	sealed, err := Seal(key, nonce, []byte("my notes"), ad)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if len(sealed) != len("my notes")+Overhead {
		t.Errorf("unexpected sealed length %d", len(sealed))
	}

	plain, err := Open(key, nonce, sealed, ad)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if string(plain) != "my notes" {
		t.Errorf("expected round trip, got %q", plain)
	}
}

func TestOpen_FailsClosed(t *testing.T) {
	key := bytes.Repeat([]byte{3}, KeyLength)
	nonce, _ := NewNonce()
	ad := []byte("header")
	sealed, _ := Seal(key, nonce, []byte("my notes"), ad)

	wrongKey := bytes.Repeat([]byte{4}, KeyLength)
	if plain, err := Open(wrongKey, nonce, sealed, ad); !errors.Is(err, kerrors.ErrWrongKeyOrCorruptData) || plain != nil {
		t.Errorf("wrong key: expected ErrWrongKeyOrCorruptData and no plaintext, got %q, %v", plain, err)
	}

	if _, err := Open(key, nonce, sealed, []byte("other")); !errors.Is(err, kerrors.ErrWrongKeyOrCorruptData) {
		t.Errorf("changed associated data: expected ErrWrongKeyOrCorruptData, got %v", err)
	}

	for i := range sealed {
		tampered := bytes.Clone(sealed)
		tampered[i] ^= 0x01
		if plain, err := Open(key, nonce, tampered, ad); !errors.Is(err, kerrors.ErrWrongKeyOrCorruptData) || plain != nil {
			t.Fatalf("flip at byte %d: expected ErrWrongKeyOrCorruptData, got %q, %v", i, plain, err)
		}
	}

	if _, err := Open(key, nonce, sealed[:Overhead-1], ad); !errors.Is(err, kerrors.ErrWrongKeyOrCorruptData) {
		t.Errorf("truncated ciphertext: expected ErrWrongKeyOrCorruptData, got %v", err)
	}
}

func TestSeal_RejectsBadKeyLength(t *testing.T) {
	nonce, _ := NewNonce()
	if _, err := Seal([]byte("short"), nonce, []byte("x"), nil); err == nil {
		t.Error("expected error for short key")
	}
}
