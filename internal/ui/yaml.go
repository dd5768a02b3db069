package ui

import (
	"io"
	"time"

	"github.com/PolarWolf314/theca/internal/notes"
	"gopkg.in/yaml.v3"
)

type yamlNote struct {
	ID          uint64 `yaml:"id"`
	Title       string `yaml:"title"`
	Status      string `yaml:"status"`
	Body        string `yaml:"body,omitempty"`
	LastTouched string `yaml:"last_touched"`
}

// WriteYAML prints notes as a YAML sequence using the field names of the
// profile document.
func WriteYAML(w io.Writer, list []notes.Note) error {
	out := make([]yamlNote, len(list))
	for i, n := range list {
		out[i] = yamlNote{
			ID:          n.ID,
			Title:       n.Title,
			Status:      n.Status.String(),
			Body:        n.Body,
			LastTouched: n.LastTouched.Format(time.RFC3339),
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}
