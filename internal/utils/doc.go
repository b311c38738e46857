// Package utils provides shared helpers for Cryptora.
//
// # String Utilities
//
//   - FormatPaths: formats file paths as an indented list for CLI output
//
// # System Utilities
//
//   - ExecutableDir: directory of the running binary, the default home
//
// # Terminal Utilities
//
//   - IsTerminal: checks whether a file is attached to a terminal
package utils
