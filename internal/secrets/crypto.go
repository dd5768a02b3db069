package secrets

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

// NonceLength is the XChaCha20-Poly1305 nonce size. At 24 bytes random
// nonces can be drawn for every save without tracking reuse.
const NonceLength = chacha20poly1305.NonceSizeX

// Overhead is the size of the authentication tag appended by Seal.
const Overhead = chacha20poly1305.Overhead

// NewNonce returns NonceLength random bytes.
func NewNonce() ([]byte, error) {
	nonce := make([]byte, NonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

// Seal encrypts plaintext and appends the authentication tag. ad is
// authenticated but not encrypted and may be nil.
func Seal(key, nonce, plaintext, ad []byte) ([]byte, error) {
	aead, err := newAEAD(key, nonce)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce, plaintext, ad), nil
}

// Open verifies and decrypts sealed. Any failure, including a wrong key,
// returns ErrWrongKeyOrCorruptData and a nil slice.
func Open(key, nonce, sealed, ad []byte) ([]byte, error) {
	aead, err := newAEAD(key, nonce)
	if err != nil {
		return nil, err
	}
	if len(sealed) < Overhead {
		return nil, fmt.Errorf("%w: ciphertext shorter than tag", kerrors.ErrWrongKeyOrCorruptData)
	}

	plaintext, err := aead.Open(nil, nonce, sealed, ad)
	if err != nil {
		return nil, kerrors.ErrWrongKeyOrCorruptData
	}
	return plaintext, nil
}

func newAEAD(key, nonce []byte) (cipher.AEAD, error) {
	if len(key) != KeyLength {
		return nil, fmt.Errorf("invalid key length: expected %d bytes, got %d bytes", KeyLength, len(key))
	}
	if len(nonce) != NonceLength {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", kerrors.ErrWrongKeyOrCorruptData,
			NonceLength, len(nonce))
	}
	return chacha20poly1305.NewX(key)
}
