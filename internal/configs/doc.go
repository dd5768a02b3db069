// Package configs resolves where profiles live and how theca behaves.
//
// Settings come from four layers, highest priority first:
//
//   - Command-line flags (--profile-path, --profiles-folder, --profile, --key)
//   - Environment variables (THECA_PROFILE_FOLDER, THECA_DEFAULT_PROFILE,
//     THECA_KEY, THECA_CONFIG, VISUAL, EDITOR, NO_COLOR)
//   - The user config file, TOML, at <user config dir>/theca/config.toml
//   - Built-in defaults: the folder ~/.theca and the profile "default"
//
// When ~/.theca is a regular file rather than a folder, its trimmed content
// is used as the profile folder path.
//
// # User Configuration
//
//	default_profile = "work"
//	profiles_folder = "~/notes"
//	editor = "nvim"
//
//	[kdf]
//	time = 1
//	memory = 65536
//	threads = 4
//
//	[display]
//	condensed = false
//	date_sort = false
//
// Resolve is pure: LoadEnv and LoadUserConfig do the reading, and the
// resulting Settings are passed explicitly to the rest of the program.
package configs
