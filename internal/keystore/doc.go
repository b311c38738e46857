// Package keystore manages the directory of key files.
//
// Key files are named <prefix>_<YYYYMMDD>_<HHMMSS>.key after the local
// time they were generated. The timestamp is fixed width and zero padded,
// so sorting names sorts keys by age, and the latest key is simply the
// greatest file name. File modification times are never consulted.
//
// The store keeps no key material in memory. Every call reads the
// directory or file it needs and returns.
//
// # Limitations
//
// Two keys generated within the same second get the same name. The second
// Generate fails instead of overwriting the first. The directory is not
// locked, so separate processes generating keys or resolving the latest
// key at the same time may race.
package keystore
