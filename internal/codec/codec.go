package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/PolarWolf314/theca/internal/notes"
	"gopkg.in/yaml.v3"
)

// Version is the document version written by Encode.
const Version = 2

// TimeLayout is the last_touched layout.
const TimeLayout = time.RFC3339

type document struct {
	Version   int        `yaml:"version"`
	Encrypted bool       `yaml:"encrypted"`
	LastID    uint64     `yaml:"last_id"`
	Notes     []wireNote `yaml:"notes"`
}

type wireNote struct {
	ID          uint64 `yaml:"id"`
	Title       string `yaml:"title"`
	Status      string `yaml:"status"`
	Body        string `yaml:"body"`
	LastTouched string `yaml:"last_touched"`
}

// Pointer twins of the wire types so that absent keys can be told apart
// from zero values.
type rawDocument struct {
	Version   *int           `yaml:"version"`
	Encrypted *bool          `yaml:"encrypted"`
	LastID    *uint64        `yaml:"last_id"`
	Notes     *[]rawWireNote `yaml:"notes"`
}

type rawWireNote struct {
	ID          *uint64 `yaml:"id"`
	Title       *string `yaml:"title"`
	Status      *string `yaml:"status"`
	Body        *string `yaml:"body"`
	LastTouched *string `yaml:"last_touched"`
}

// Encode renders p as a version 2 document. Notes keep their order.
func Encode(p *notes.Profile) ([]byte, error) {
	doc := document{
		Version:   Version,
		Encrypted: p.Encrypted,
		LastID:    p.LastID,
		Notes:     make([]wireNote, 0, len(p.Notes)),
	}

	seen := make(map[uint64]bool, len(p.Notes))
	for _, n := range p.Notes {
		if strings.TrimSpace(n.Title) == "" {
			return nil, fmt.Errorf("%w: note %d has an empty title", kerrors.ErrFormat, n.ID)
		}
		if !n.Status.Valid() {
			return nil, fmt.Errorf("%w: note %d has invalid status %v", kerrors.ErrFormat, n.ID, n.Status)
		}
		if seen[n.ID] {
			return nil, fmt.Errorf("%w: duplicate note id %d", kerrors.ErrFormat, n.ID)
		}
		seen[n.ID] = true
		doc.LastID = max(doc.LastID, n.ID)

		doc.Notes = append(doc.Notes, wireNote{
			ID:          n.ID,
			Title:       n.Title,
			Status:      n.Status.String(),
			Body:        n.Body,
			LastTouched: n.LastTouched.Format(TimeLayout),
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a version 2 document. The returned profile has no Name.
func Decode(data []byte) (*notes.Profile, error) {
	raw, err := decodeStrict(data)
	if err == nil && raw.Version == nil {
		err = errors.New("missing version")
	}
	if err != nil {
		if isLegacy(data) {
			return nil, kerrors.ErrIncompatibleLegacyFormat
		}
		return nil, fmt.Errorf("%w: %v", kerrors.ErrFormat, err)
	}

	return build(raw)
}

func decodeStrict(data []byte) (*rawDocument, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw rawDocument
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected content after document")
	}
	return &raw, nil
}

func build(raw *rawDocument) (*notes.Profile, error) {
	switch {
	case *raw.Version != Version:
		return nil, fmt.Errorf("%w: unsupported version %d", kerrors.ErrFormat, *raw.Version)
	case raw.Encrypted == nil:
		return nil, fmt.Errorf("%w: missing field encrypted", kerrors.ErrFormat)
	case raw.Notes == nil:
		return nil, fmt.Errorf("%w: missing field notes", kerrors.ErrFormat)
	}

	p := &notes.Profile{Encrypted: *raw.Encrypted}
	if raw.LastID != nil {
		p.LastID = *raw.LastID
	}

	seen := make(map[uint64]bool, len(*raw.Notes))
	for i, rn := range *raw.Notes {
		n, err := buildNote(rn)
		if err != nil {
			return nil, fmt.Errorf("%w: note %d: %v", kerrors.ErrFormat, i+1, err)
		}
		if seen[n.ID] {
			return nil, fmt.Errorf("%w: duplicate note id %d", kerrors.ErrFormat, n.ID)
		}
		seen[n.ID] = true
		p.LastID = max(p.LastID, n.ID)
		p.Notes = append(p.Notes, n)
	}
	return p, nil
}

func buildNote(rn rawWireNote) (notes.Note, error) {
	switch {
	case rn.ID == nil:
		return notes.Note{}, errors.New("missing field id")
	case rn.Title == nil:
		return notes.Note{}, errors.New("missing field title")
	case rn.Status == nil:
		return notes.Note{}, errors.New("missing field status")
	case rn.Body == nil:
		return notes.Note{}, errors.New("missing field body")
	case rn.LastTouched == nil:
		return notes.Note{}, errors.New("missing field last_touched")
	case strings.TrimSpace(*rn.Title) == "":
		return notes.Note{}, errors.New("empty title")
	}

	status, err := notes.ParseStatus(*rn.Status)
	if err != nil {
		return notes.Note{}, err
	}
	touched, err := time.Parse(TimeLayout, *rn.LastTouched)
	if err != nil {
		return notes.Note{}, fmt.Errorf("bad last_touched %q", *rn.LastTouched)
	}

	return notes.Note{
		ID:          *rn.ID,
		Title:       *rn.Title,
		Body:        *rn.Body,
		Status:      status,
		LastTouched: touched,
	}, nil
}
