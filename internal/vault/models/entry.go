// Package models defines the persisted and in-memory data shapes of the
// vault core.
package models

import "github.com/dmitrijs2005/passvault/internal/secret"

// EntryEncrypted mirrors a password_entries row. Token is the opaque
// base64(nonce || ciphertext || tag) value held in the password_hash column;
// it never contains the plaintext password.
type EntryEncrypted struct {
	ID       int64
	Site     string
	Username string
	Token    string
}

// EntryPlain is the decrypted form of an entry. It exists in memory only and
// is never persisted; the password lives in a secret.Buffer so it can be
// wiped once the view holding it goes away.
type EntryPlain struct {
	ID       int64
	Site     string
	Username string
	Password *secret.Buffer
}

// Wipe destroys the password material. Safe to call more than once.
func (e *EntryPlain) Wipe() {
	if e == nil {
		return
	}
	e.Password.Wipe()
}

// WipeAll wipes every entry in the slice. Used when a decryption pass fails
// midway and already-decrypted passwords must not linger.
func WipeAll(entries []EntryPlain) {
	for i := range entries {
		entries[i].Wipe()
	}
}
