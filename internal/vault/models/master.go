package models

// MasterCredential is the persisted singleton row (id=1) holding the
// master-password verifier and the key-derivation salt.
//
// VerifierHash is a self-describing PHC string
// ($argon2id$v=19$m=...,t=...,p=...$salt$hash) used only to check a
// candidate master password; it is not a key. KeySalt is a separate ASCII
// salt fed into the KDF that produces the AEAD key.
//
// Invariant: KeySalt is non-empty iff VerifierHash is non-empty. Both are
// mutated only by the authentication service, inside one transaction.
type MasterCredential struct {
	VerifierHash string
	KeySalt      string
}

// IsSet reports whether a master password has been established.
func (m *MasterCredential) IsSet() bool {
	return m != nil && m.VerifierHash != ""
}
