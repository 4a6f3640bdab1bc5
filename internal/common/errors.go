// Package common defines shared sentinel errors and small utilities used
// across the vault core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Routine, user-visible errors.
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrNotFound          = errors.New("not found")
	ErrUnauthenticated   = errors.New("not signed in")

	// Corruption / misconfiguration. Surface to the user as a persistent
	// notice, never auto-retry.
	ErrHashing            = errors.New("password hash error")
	ErrKDF                = errors.New("key derivation error")
	ErrMalformedToken     = errors.New("malformed encrypted token")
	ErrAuthFailed         = errors.New("decryption failed")
	ErrMalformedPlaintext = errors.New("decrypted data is not valid utf-8")
	ErrStore              = errors.New("store error")

	// Clipboard failures are swallowed by callers; the sentinel exists so
	// the gate can still report them to diagnostics.
	ErrClipboard = errors.New("clipboard error")
)
