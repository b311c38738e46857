// Package audit records Cryptora activity.
//
// Every encrypt, decrypt, genkey and listkeys call appends one JSON object
// to a daily file in the logs directory:
//
//	logs/log_2025-01-01.jsonl
//
// Entries carry the session id, operation, input and output paths, the key
// file used and whether the operation succeeded. Key material and file
// contents are never logged.
//
// Logging is best-effort. A log that cannot be written is skipped and the
// operation still succeeds. Set audit = false in cryptora.toml to turn it off.
package audit
