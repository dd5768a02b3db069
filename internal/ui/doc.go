// Package ui provides semantic text formatting for CLI output.
//
// This package defines formatters for different types of content (code,
// paths, errors, etc.) that render appropriately based on terminal
// capabilities. When colors are available, content is colorized. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, quotes) are used instead.
//
// # Semantic Formatters
//
// Use the appropriate formatter for the content type:
//
//	ui.Code.Sprint("theca new-profile work")  // Commands and code
//	ui.Path.Sprint("~/.theca/default.yaml")   // File paths
//	ui.Success.Sprint("✓")                    // Success indicators
//	ui.Error.Sprint("✗")                      // Error indicators
//	ui.Warning.Sprint("Started")              // Warnings
//	ui.Info.Sprint("→")                       // Informational hints
//	ui.Highlight.Sprint("work")               // Profile names, note titles
//	ui.Muted.Sprint("empty")                  // De-emphasized text
//
// # Note Rendering
//
// WriteTable and WriteNote render notes for list, search and view. Column
// widths are measured in terminal cells so wide characters line up, and
// titles are truncated to fit the terminal.
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
//   - DisableColor has been called
package ui
