// Package codec converts a notes.Profile to and from its YAML document.
//
// The canonical document is version 2:
//
//	version: 2
//	encrypted: false
//	last_id: 3
//	notes:
//	  - id: 1
//	    title: buy milk
//	    status: None
//	    body: ""
//	    last_touched: 2026-10-18T09:30:00+02:00
//
// Decoding is strict. Unknown fields, missing fields, unknown statuses and
// duplicate ids are all ErrFormat. Documents written by older theca
// releases (the JSON schema and the versionless YAML schema) are detected
// and reported as ErrIncompatibleLegacyFormat; they are never converted.
package codec
