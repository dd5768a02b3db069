// Package utils provides the terminal and process collaborators used by
// theca commands.
//
// # Terminal Utilities
//
//   - ReadPassphrase: prompts for a passphrase without echo
//   - ReadNewPassphrase: prompts twice and checks both entries match
//   - IsTerminal, TerminalWidth: terminal detection and layout
//
// # Editor
//
// EditWith returns an Editor that hands the current text to an external
// editor through a private temporary file and returns what the user saved.
//
// # I/O Utilities
//
//   - ReadStdin: reads a note body piped on standard input
//
// # System Utilities
//
//   - GetUsername: the current system user, recorded in the operation log
//
// # String Utilities
//
//   - FormatIDs: renders note ids for messages
package utils
