// Package audit records an operation trail for a profile folder.
//
// Every mutating operation (add, edit, delete, clear, transfer, new-profile,
// encrypt-profile, decrypt-profile) appends one entry to the folder's log.
// Entries written by a single command invocation share an invocation id so
// that multi-profile operations such as transfer can be grouped.
//
// # Log Format
//
// The log is stored as JSON Lines (one JSON object per line) at:
//
//	<profile folder>/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - System user name and invocation id
//   - Operation name and profile name
//   - Operation-specific details (note ids, target profile, counts)
//
// Note titles, bodies and passphrases are never written to the log.
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error. The log is never created
// in a folder that does not exist yet.
//
// # Reading Logs
//
// Use Trail.ReadEntries to parse the log for display.
// Malformed entries are silently skipped to handle partial writes.
package audit
