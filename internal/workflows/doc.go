// Package workflows provides high-level orchestration for theca commands.
//
// Workflows coordinate the store, the note engine and the audit trail to
// implement complete user-facing features. Each workflow handles a single
// command's business logic, independent of CLI concerns like flag parsing,
// spinners, prompts and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Resolves settings and builds a Workspace
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Opening profiles, asking the KeyProvider only for encrypted files
//   - Applying the note operation
//   - Saving the profile back with the passphrase it was opened with
//   - Recording audit trail entries
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to pick messages and exit codes without string matching:
//
//	result, err := workflows.Edit(ctx, ws, opts)
//	if errors.Is(err, kerrors.ErrNoteNotFound) {
//	    // Show which id was missing
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// It is checked between steps; a write that has started is never abandoned.
package workflows
