// Package logger provides leveled console logging for theca commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is prefixed with a colored level tag.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()          // Shown with --verbose or --debug
//	Logger.Debugf()         // Shown only with --debug
//	Logger.Warnf()          // Shown with --verbose or --debug
//	Logger.WarnfAlways()    // Always shown (critical warnings)
//	Logger.Errorf()         // Shown with --debug
//	Logger.ErrorfAndReturn() // Logs like Errorf and returns the formatted error
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d notes", count)
//
// The root command builds a logger in its PersistentPreRun. Passphrases
// must never be passed to any log method.
package logger
