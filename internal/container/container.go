package container

import (
	"errors"
	"fmt"

	"github.com/PolarWolf314/theca/internal/codec"
	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/PolarWolf314/theca/internal/notes"
	"github.com/PolarWolf314/theca/internal/secrets"
)

// KeyProvider supplies the passphrase of an encrypted profile. It is only
// consulted when the data being unpacked is encrypted.
type KeyProvider interface {
	Passphrase() ([]byte, error)
}

// StaticKey is a KeyProvider for a passphrase known up front.
type StaticKey []byte

// Passphrase implements KeyProvider.
func (k StaticKey) Passphrase() ([]byte, error) {
	return []byte(k), nil
}

// KeyFunc adapts a function, such as an interactive prompt, to KeyProvider.
type KeyFunc func() ([]byte, error)

// Passphrase implements KeyProvider.
func (f KeyFunc) Passphrase() ([]byte, error) {
	return f()
}

type options struct {
	params secrets.KDFParams
	limit  secrets.KDFParams
}

// Option configures Pack and Unpack.
type Option func(*options)

// WithKDFParams sets the cost parameters Pack uses for new envelopes.
func WithKDFParams(params secrets.KDFParams) Option {
	return func(o *options) { o.params = params }
}

// WithKDFLimit caps the cost parameters Unpack accepts from an envelope.
// Without it the cap is secrets.KDFLimitFor of the write parameters.
func WithKDFLimit(limit secrets.KDFParams) Option {
	return func(o *options) { o.limit = limit }
}

func newOptions(opts []Option) options {
	o := options{params: secrets.DefaultKDFParams()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.limit == (secrets.KDFParams{}) {
		o.limit = secrets.KDFLimitFor(o.params)
	}
	return o
}

// Pack returns the stored form of p. For encrypted profiles a new salt and
// nonce are drawn and recorded in p.Seal.
func Pack(p *notes.Profile, passphrase []byte, opts ...Option) ([]byte, error) {
	doc, err := codec.Encode(p)
	if err != nil {
		return nil, err
	}
	if !p.Encrypted {
		p.Seal = nil
		return doc, nil
	}

	o := newOptions(opts)
	salt, err := secrets.NewSalt()
	if err != nil {
		return nil, err
	}
	nonce, err := secrets.NewNonce()
	if err != nil {
		return nil, err
	}
	key, err := secrets.DeriveKey(passphrase, salt, o.params)
	if err != nil {
		return nil, err
	}

	header := buildHeader(o.params, salt)
	sealed, err := secrets.Seal(key, nonce, doc, header)
	if err != nil {
		return nil, fmt.Errorf("failed to seal profile: %w", err)
	}

	p.Seal = &notes.Seal{
		KDF:   notes.KDFParams{Time: o.params.Time, Memory: o.params.Memory, Threads: o.params.Threads},
		Salt:  salt,
		Nonce: nonce,
	}
	env := envelope{params: o.params, salt: salt, nonce: nonce, sealed: sealed, header: header}
	return env.marshalText(), nil
}

// Unpack parses stored profile data. keys may be nil when the data is known
// to be plaintext.
func Unpack(data []byte, keys KeyProvider, opts ...Option) (*notes.Profile, error) {
	if !looksLikeEnvelope(data) {
		p, err := codec.Decode(data)
		if err != nil {
			return nil, err
		}
		if p.Encrypted {
			return nil, fmt.Errorf("%w: document is marked encrypted but stored as plaintext", kerrors.ErrFormat)
		}
		return p, nil
	}

	o := newOptions(opts)
	env, err := parseEnvelope(data, o.limit)
	if err != nil {
		return nil, err
	}

	if keys == nil {
		return nil, kerrors.ErrNoPassphrase
	}
	passphrase, err := keys.Passphrase()
	if err != nil {
		return nil, err
	}

	key, err := secrets.DeriveKey(passphrase, env.salt, env.params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrWrongKeyOrCorruptData, err)
	}
	doc, err := secrets.Open(key, env.nonce, env.sealed, env.header)
	if err != nil {
		return nil, err
	}

	p, err := codec.Decode(doc)
	if err != nil {
		if errors.Is(err, kerrors.ErrFormat) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", kerrors.ErrFormat, err)
	}
	if !p.Encrypted {
		return nil, fmt.Errorf("%w: encrypted document is marked plaintext", kerrors.ErrFormat)
	}

	p.Seal = &notes.Seal{
		KDF:   notes.KDFParams{Time: env.params.Time, Memory: env.params.Memory, Threads: env.params.Threads},
		Salt:  env.salt,
		Nonce: env.nonce,
	}
	return p, nil
}

// IsEncrypted reports whether data is stored in the encrypted envelope.
func IsEncrypted(data []byte) bool {
	return looksLikeEnvelope(data)
}
