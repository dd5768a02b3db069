package codec

import (
	"gopkg.in/yaml.v3"
)

// legacyStatuses are the status spellings of the old schemas: the JSON
// schema used "" for no status, the versionless YAML schema used "Blank".
var legacyStatuses = map[string]bool{
	"":        true,
	"Blank":   true,
	"Started": true,
	"Urgent":  true,
}

// isLegacy reports whether data looks like a profile written by an old
// theca release. JSON is valid YAML so one parse covers both schemas.
// Only the shape is inspected; nothing is converted.
func isLegacy(data []byte) bool {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil || doc == nil {
		return false
	}
	if _, ok := doc["version"]; ok {
		return false
	}
	if _, ok := doc["encrypted"].(bool); !ok {
		return false
	}
	list, ok := doc["notes"].([]any)
	if !ok {
		return doc["notes"] == nil && hasKey(doc, "notes")
	}

	for _, item := range list {
		note, ok := item.(map[string]any)
		if !ok {
			return false
		}
		status, ok := note["status"].(string)
		if !ok || !legacyStatuses[status] {
			return false
		}
	}
	return true
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}
