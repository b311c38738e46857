// Package configs loads Cryptora's configuration.
//
// Configuration lives in a TOML file, cryptora.toml in the home directory
// by default (the home directory is the directory of the executable unless
// --home says otherwise):
//
//	keys_dir   = "keys"
//	logs_dir   = "logs"
//	key_prefix = "cryptora"
//	cipher     = "secretbox"
//	audit      = true
//
// A missing file means defaults. Unknown keys and invalid values are
// rejected with ErrInvalidConfig.
//
// Settings is the resolved form: absolute directories computed once and
// passed by pointer into the workflows Session. Nothing in this package
// is global, so tests can point each Settings at its own temp directory.
package configs
