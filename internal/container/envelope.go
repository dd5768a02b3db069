package container

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/PolarWolf314/theca/internal/secrets"
)

const (
	magic          = "THCA"
	envelopeV1     = 0x01
	kdfArgon2id    = 0x01
	fixedHeaderLen = len(magic) + 1 + 1 + 4 + 4 + 1 + 1
)

// minEnvelopeLen is the smallest possible decoded envelope.
var minEnvelopeLen = fixedHeaderLen + secrets.MinSaltLength + secrets.NonceLength + secrets.Overhead

var encoding = base64.StdEncoding.Strict()

var errCorrupt = kerrors.ErrWrongKeyOrCorruptData

type envelope struct {
	params secrets.KDFParams
	salt   []byte
	nonce  []byte
	sealed []byte
	// header is the raw bytes before the nonce, used as associated data.
	header []byte
}

func buildHeader(params secrets.KDFParams, salt []byte) []byte {
	h := make([]byte, 0, fixedHeaderLen+len(salt))
	h = append(h, magic...)
	h = append(h, envelopeV1, kdfArgon2id)
	h = binary.BigEndian.AppendUint32(h, params.Time)
	h = binary.BigEndian.AppendUint32(h, params.Memory)
	h = append(h, params.Threads, byte(len(salt)))
	return append(h, salt...)
}

func (e *envelope) marshalText() []byte {
	raw := make([]byte, 0, len(e.header)+len(e.nonce)+len(e.sealed))
	raw = append(raw, e.header...)
	raw = append(raw, e.nonce...)
	raw = append(raw, e.sealed...)

	out := make([]byte, encoding.EncodedLen(len(raw))+1)
	encoding.Encode(out, raw)
	out[len(out)-1] = '\n'
	return out
}

// isBase64Byte reports membership in the standard alphabet plus padding.
func isBase64Byte(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' ||
		c == '+' || c == '/' || c == '='
}

// looksLikeEnvelope reports whether data is, or is one byte away from, a
// base64 line. Damaged envelopes must still take the decrypt path so they
// fail as corrupt data rather than as a malformed document.
func looksLikeEnvelope(data []byte) bool {
	if len(data) < encoding.EncodedLen(minEnvelopeLen)+1 {
		return false
	}

	bad := 0
	if data[len(data)-1] != '\n' {
		bad++
	}
	for _, c := range data[:len(data)-1] {
		if !isBase64Byte(c) {
			bad++
			if bad > 1 {
				return false
			}
		}
	}
	return bad <= 1
}

func parseEnvelope(data []byte, limit secrets.KDFParams) (*envelope, error) {
	if data[len(data)-1] != '\n' {
		return nil, fmt.Errorf("%w: missing trailing newline", errCorrupt)
	}
	body := data[:len(data)-1]
	if bytes.ContainsAny(body, "\r\n") {
		return nil, fmt.Errorf("%w: unexpected line break", errCorrupt)
	}

	raw := make([]byte, encoding.DecodedLen(len(body)))
	n, err := encoding.Decode(raw, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	raw = raw[:n]

	if len(raw) < minEnvelopeLen || string(raw[:len(magic)]) != magic {
		return nil, fmt.Errorf("%w: not a theca envelope", errCorrupt)
	}
	if raw[4] != envelopeV1 || raw[5] != kdfArgon2id {
		return nil, fmt.Errorf("%w: unsupported envelope version %d/%d", errCorrupt, raw[4], raw[5])
	}

	params := secrets.KDFParams{
		Time:    binary.BigEndian.Uint32(raw[6:10]),
		Memory:  binary.BigEndian.Uint32(raw[10:14]),
		Threads: raw[14],
	}
	if err := checkParams(params, limit); err != nil {
		return nil, err
	}

	saltLen := int(raw[15])
	if saltLen < secrets.MinSaltLength {
		return nil, fmt.Errorf("%w: salt too short", errCorrupt)
	}
	headerLen := fixedHeaderLen + saltLen
	if len(raw) < headerLen+secrets.NonceLength+secrets.Overhead {
		return nil, fmt.Errorf("%w: truncated envelope", errCorrupt)
	}

	return &envelope{
		params: params,
		header: raw[:headerLen],
		salt:   raw[fixedHeaderLen:headerLen],
		nonce:  raw[headerLen : headerLen+secrets.NonceLength],
		sealed: raw[headerLen+secrets.NonceLength:],
	}, nil
}

// checkParams rejects parameters that are invalid or above limit before any
// memory is spent on them. Parameters come from an unauthenticated header.
func checkParams(params, limit secrets.KDFParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("%w: %v", errCorrupt, err)
	}
	if params.Time > limit.Time || params.Memory > limit.Memory || params.Threads > limit.Threads {
		return fmt.Errorf("%w: key derivation parameters exceed the configured limit", errCorrupt)
	}
	return nil
}
