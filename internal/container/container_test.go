package container

import (
	"bytes"
	"errors"
	"testing"
	"time"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/PolarWolf314/theca/internal/notes"
	"github.com/PolarWolf314/theca/internal/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testParams = secrets.KDFParams{Time: 1, Memory: 64, Threads: 1}
	testLimit  = secrets.KDFParams{Time: 2, Memory: 256, Threads: 2}
)

func testOptions() []Option {
	return []Option{WithKDFParams(testParams), WithKDFLimit(testLimit)}
}

func sampleProfile(encrypted bool) *notes.Profile {
	p := notes.NewProfile("sample", encrypted)
	p.SetClock(func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) })
	_, _ = p.Add("first", "body one", notes.StatusNone)
	_, _ = p.Add("second", "multi\nline\n", notes.StatusUrgent)
	_, _ = p.Add("third", "", notes.StatusStarted)
	p.Delete(3)
	return p
}

func assertSameNotes(t *testing.T, want, got *notes.Profile) {
	t.Helper()
	assert.Equal(t, want.Encrypted, got.Encrypted)
	assert.Equal(t, want.LastID, got.LastID)
	require.Len(t, got.Notes, len(want.Notes))
	for i := range want.Notes {
		assert.Equal(t, want.Notes[i].ID, got.Notes[i].ID)
		assert.Equal(t, want.Notes[i].Title, got.Notes[i].Title)
		assert.Equal(t, want.Notes[i].Body, got.Notes[i].Body)
		assert.Equal(t, want.Notes[i].Status, got.Notes[i].Status)
		assert.True(t, want.Notes[i].LastTouched.Equal(got.Notes[i].LastTouched))
	}
}

func TestPackUnpack_Plaintext(t *testing.T) {
	p := sampleProfile(false)

	data, err := Pack(p, nil, testOptions()...)
	require.NoError(t, err)
	assert.False(t, IsEncrypted(data))
	assert.Nil(t, p.Seal)

	got, err := Unpack(data, nil, testOptions()...)
	require.NoError(t, err)
	assertSameNotes(t, p, got)
	assert.Equal(t, uint64(3), got.LastID)
}

func TestPackUnpack_Encrypted(t *testing.T) {
	p := sampleProfile(true)

	data, err := Pack(p, []byte("correct horse"), testOptions()...)
	require.NoError(t, err)
	assert.True(t, IsEncrypted(data))
	assert.Equal(t, byte('\n'), data[len(data)-1])
	assert.Equal(t, 1, bytes.Count(data, []byte("\n")))
	assert.NotContains(t, string(data), "first")

	require.NotNil(t, p.Seal)
	assert.Len(t, p.Seal.Salt, secrets.SaltLength)
	assert.Len(t, p.Seal.Nonce, secrets.NonceLength)

	got, err := Unpack(data, StaticKey("correct horse"), testOptions()...)
	require.NoError(t, err)
	assertSameNotes(t, p, got)
	require.NotNil(t, got.Seal)
	assert.Equal(t, p.Seal.Salt, got.Seal.Salt)
	assert.Equal(t, p.Seal.Nonce, got.Seal.Nonce)
	assert.Equal(t, notes.KDFParams{Time: 1, Memory: 64, Threads: 1}, got.Seal.KDF)
}

func TestPack_FreshSaltAndNonceEverySave(t *testing.T) {
	p := sampleProfile(true)

	a, err := Pack(p, []byte("pw"), testOptions()...)
	require.NoError(t, err)
	firstNonce := p.Seal.Nonce
	b, err := Pack(p, []byte("pw"), testOptions()...)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, firstNonce, p.Seal.Nonce)
}

func TestUnpack_WrongKey(t *testing.T) {
	data, err := Pack(sampleProfile(true), []byte("right"), testOptions()...)
	require.NoError(t, err)

	for _, key := range []string{"wrong", "", "right ", "Right"} {
		p, err := Unpack(data, StaticKey(key), testOptions()...)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, kerrors.ErrWrongKeyOrCorruptData, "key %q", key)
		assert.NotErrorIs(t, err, kerrors.ErrFormat, "key %q", key)
	}
}

func TestUnpack_EveryByteTampered(t *testing.T) {
	data, err := Pack(sampleProfile(true), []byte("pw"), testOptions()...)
	require.NoError(t, err)

	for i := range data {
		for _, mask := range []byte{0x01, 0x20, 0x80} {
			tampered := bytes.Clone(data)
			tampered[i] ^= mask

			p, err := Unpack(tampered, StaticKey("pw"), testOptions()...)
			if p != nil || !errors.Is(err, kerrors.ErrWrongKeyOrCorruptData) {
				t.Fatalf("byte %d ^ %#x: expected ErrWrongKeyOrCorruptData, got profile=%v err=%v", i, mask, p != nil, err)
			}
		}
	}
}

func TestParseEnvelope_TamperedHeaderStaysWithinDefaultLimit(t *testing.T) {
	params := secrets.DefaultKDFParams()
	env := envelope{
		header: buildHeader(params, bytes.Repeat([]byte{1}, secrets.SaltLength)),
		nonce:  make([]byte, secrets.NonceLength),
		sealed: make([]byte, secrets.Overhead+8),
	}
	data := env.marshalText()
	limit := newOptions(nil).limit
	assert.Equal(t, secrets.KDFLimitFor(params), limit)

	// Character 15 carries a byte of the memory cost: '/' turns 64 MiB into ~4 GiB.
	tampered := bytes.Clone(data)
	tampered[15] = '/'
	_, err := parseEnvelope(tampered, limit)
	assert.ErrorIs(t, err, kerrors.ErrWrongKeyOrCorruptData)

	alphabet := "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	headerChars := encoding.EncodedLen(fixedHeaderLen)
	for i := 0; i < headerChars; i++ {
		for j := range len(alphabet) {
			tampered := bytes.Clone(data)
			tampered[i] = alphabet[j]

			got, err := parseEnvelope(tampered, limit)
			if err != nil {
				continue
			}
			if got.params.Time > limit.Time || got.params.Memory > limit.Memory || got.params.Threads > limit.Threads {
				t.Fatalf("char %d = %q accepted params %+v above %+v", i, alphabet[j], got.params, limit)
			}
		}
	}
}

func TestUnpack_Truncated(t *testing.T) {
	data, err := Pack(sampleProfile(true), []byte("pw"), testOptions()...)
	require.NoError(t, err)

	truncated := append(bytes.Clone(data[:len(data)-9]), '\n')
	_, err = Unpack(truncated, StaticKey("pw"), testOptions()...)
	assert.ErrorIs(t, err, kerrors.ErrWrongKeyOrCorruptData)
}

func TestUnpack_ParamsAboveLimitRejectedBeforeDerivation(t *testing.T) {
	heavy := secrets.KDFParams{Time: 3, Memory: 64, Threads: 1}
	data, err := Pack(sampleProfile(true), []byte("pw"), WithKDFParams(heavy))
	require.NoError(t, err)

	asked := false
	keys := KeyFunc(func() ([]byte, error) {
		asked = true
		return []byte("pw"), nil
	})
	_, err = Unpack(data, keys, WithKDFLimit(testLimit))
	assert.ErrorIs(t, err, kerrors.ErrWrongKeyOrCorruptData)
	assert.False(t, asked, "passphrase must not be requested for a rejected header")

	got, err := Unpack(data, keys)
	require.NoError(t, err)
	assert.True(t, asked)
	assert.Equal(t, uint32(3), got.Seal.KDF.Time)
}

func TestUnpack_KeyProviderOnlyForEncrypted(t *testing.T) {
	data, err := Pack(sampleProfile(false), nil)
	require.NoError(t, err)

	keys := KeyFunc(func() ([]byte, error) {
		t.Fatal("passphrase requested for a plaintext profile")
		return nil, nil
	})
	_, err = Unpack(data, keys)
	require.NoError(t, err)
}

func TestUnpack_KeyProviderError(t *testing.T) {
	data, err := Pack(sampleProfile(true), []byte("pw"), testOptions()...)
	require.NoError(t, err)

	_, err = Unpack(data, nil, testOptions()...)
	assert.ErrorIs(t, err, kerrors.ErrNoPassphrase)

	boom := errors.New("terminal gone")
	_, err = Unpack(data, KeyFunc(func() ([]byte, error) { return nil, boom }), testOptions()...)
	assert.ErrorIs(t, err, boom)
}

func TestUnpack_EncryptedFlagMustMatchContainer(t *testing.T) {
	doc := []byte("version: 2\nencrypted: true\nlast_id: 0\nnotes: []\n")

	_, err := Unpack(doc, StaticKey("pw"))
	assert.ErrorIs(t, err, kerrors.ErrFormat)
}

func TestUnpack_PlaintextFormatError(t *testing.T) {
	_, err := Unpack([]byte("version: 2\nnotes: [\n"), nil)
	assert.ErrorIs(t, err, kerrors.ErrFormat)
	assert.NotErrorIs(t, err, kerrors.ErrWrongKeyOrCorruptData)
}

func TestUnpack_LegacyPlaintext(t *testing.T) {
	legacy := []byte(`{"encrypted": false, "notes": [{"id": 1, "title": "t", "status": "", "body": "", "last_touched": "2016-01-01 00:00:00"}]}`)
	_, err := Unpack(legacy, nil)
	assert.ErrorIs(t, err, kerrors.ErrIncompatibleLegacyFormat)
}

func TestIsEncrypted(t *testing.T) {
	assert.False(t, IsEncrypted(nil))
	assert.False(t, IsEncrypted([]byte("version: 2\n")))
	assert.False(t, IsEncrypted([]byte("QUJD\n")))
}
