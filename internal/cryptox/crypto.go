// Package cryptox implements the cryptographic contract of the vault:
// Argon2id key derivation and the AES-256-GCM record cipher producing the
// self-contained tokens stored in the entries table.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/secret"
)

// Argon2id parameters for the AEAD key. These follow the argon2 package
// recommendation for key derivation and must stay fixed: the same
// (password, salt) pair has to reproduce the same key across runs.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keyLen       = 32

	nonceSize   = 12
	keySaltSize = 16
)

// DeriveKey maps (master password, key salt) to the 32-byte AES key.
// Deterministic: same inputs always produce the same output. The caller owns
// the returned slice and should wipe it as soon as the cipher is done.
func DeriveKey(password, keySalt *secret.Buffer) ([]byte, error) {
	if keySalt.IsEmpty() {
		return nil, fmt.Errorf("%w: empty key salt", common.ErrKDF)
	}
	return argon2.IDKey(password.Bytes(), keySalt.Bytes(), argonTime, argonMemory, argonThreads, keyLen), nil
}

// NewKeySalt returns a fresh ASCII salt for DeriveKey. It is distinct from
// the salt embedded in the master-password verifier hash.
func NewKeySalt() (string, error) {
	s, err := common.MakeRandHexString(keySaltSize)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrKDF, err)
	}
	return s, nil
}

// EncryptToken seals plain under key with AES-256-GCM and a fresh random
// 12-byte nonce, returning base64(nonce || ciphertext || tag). The AAD is
// empty. Two encryptions of the same plaintext yield distinct tokens.
func EncryptToken(plain *secret.Buffer, key []byte) (string, error) {
	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("nonce generation failed: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, plain.Bytes(), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptToken is the inverse of EncryptToken.
//
// Failure modes, matched with errors.Is:
//   - common.ErrMalformedToken: base64 decode failure or decoded length
//     too short to contain a nonce.
//   - common.ErrAuthFailed: the authentication tag does not verify
//     (wrong key, or the stored token was tampered with).
//   - common.ErrMalformedPlaintext: the decrypted bytes are not valid UTF-8.
func DecryptToken(token string, key []byte) (*secret.Buffer, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}
	if len(raw) <= nonceSize {
		return nil, fmt.Errorf("%w: token too short (%d bytes)", common.ErrMalformedToken, len(raw))
	}

	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAuthFailed, err)
	}

	if !utf8.Valid(plain) {
		secret.WipeBytes(plain)
		return nil, common.ErrMalformedPlaintext
	}

	buf := secret.New(plain)
	secret.WipeBytes(plain)
	return buf, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKDF, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKDF, err)
	}
	return aead, nil
}
