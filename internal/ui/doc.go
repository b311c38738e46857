// Package ui provides semantic text formatting for CLI output.
//
// Formatters colorize content when the terminal supports it. When NO_COLOR
// is set or colors are unavailable, Code gets `backticks`, Key gets
// 'single quotes' and Muted gets (parentheses); the rest are left as is.
//
//	ui.Done("File encrypted")        // ✓ File encrypted
//	ui.Failed("Key not found")       // ✗ Key not found
//	ui.Hint("Run " + ui.Code.Sprint("cryptora genkey"))
package ui
