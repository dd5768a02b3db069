package secrets

import (
	"crypto/rand"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"golang.org/x/crypto/argon2"
)

const (
	// KeyLength is the size of derived keys in bytes.
	KeyLength = 32

	// SaltLength is the size of salts produced by NewSalt.
	SaltLength = 16

	// MinSaltLength and MaxSaltLength bound salts accepted by DeriveKey.
	MinSaltLength = 16
	MaxSaltLength = 255

	// MaxKDFTime and MaxKDFMemory cap the cost parameters read back from disk.
	MaxKDFTime   = 64
	MaxKDFMemory = 4 * 1024 * 1024 // 4 GiB in KiB
)

// KDFParams are the Argon2id cost parameters.
type KDFParams struct {
	Time    uint32 `toml:"time" json:"time"`
	Memory  uint32 `toml:"memory" json:"memory"` // KiB
	Threads uint8  `toml:"threads" json:"threads"`
}

// DefaultKDFParams returns the cost parameters used for newly written profiles:
// one pass over 64 MiB with four lanes.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
	}
}

// KDFLimitFor returns the largest cost parameters accepted when reading an
// envelope, given the parameters configured for writing. Each field allows
// headroom over the larger of configured and DefaultKDFParams so profiles
// written on a slightly stronger setting still open.
func KDFLimitFor(configured KDFParams) KDFParams {
	base := DefaultKDFParams()
	return KDFParams{
		Time:    min(4*max(configured.Time, base.Time), MaxKDFTime),
		Memory:  uint32(min(2*uint64(max(configured.Memory, base.Memory)), MaxKDFMemory)),
		Threads: uint8(min(2*int(max(configured.Threads, base.Threads)), 255)),
	}
}

// Validate reports whether p can be fed to Argon2id.
func (p KDFParams) Validate() error {
	switch {
	case p.Time == 0 || p.Time > MaxKDFTime:
		return fmt.Errorf("%w: time cost %d outside 1..%d", kerrors.ErrKeyDerivation, p.Time, MaxKDFTime)
	case p.Threads == 0:
		return fmt.Errorf("%w: parallelism must be at least 1", kerrors.ErrKeyDerivation)
	case p.Memory < 8*uint32(p.Threads) || p.Memory > MaxKDFMemory:
		return fmt.Errorf("%w: memory cost %d KiB outside %d..%d", kerrors.ErrKeyDerivation,
			p.Memory, 8*uint32(p.Threads), MaxKDFMemory)
	}
	return nil
}

// NewSalt returns SaltLength random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey stretches passphrase into a KeyLength key with Argon2id.
// The result is deterministic for identical inputs.
func DeriveKey(passphrase, salt []byte, params KDFParams) ([]byte, error) {
	if len(salt) < MinSaltLength || len(salt) > MaxSaltLength {
		return nil, fmt.Errorf("%w: salt must be %d..%d bytes, got %d", kerrors.ErrKeyDerivation,
			MinSaltLength, MaxSaltLength, len(salt))
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return argon2.IDKey(passphrase, salt, params.Time, params.Memory, params.Threads, KeyLength), nil
}
