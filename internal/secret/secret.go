// Package secret provides a scoped container for sensitive in-memory data
// such as passwords, salts and derived keys. The backing storage is
// overwritten with zeros on release, comparisons run in constant time, and
// every textual formatter redacts the contents so secrets cannot leak into
// logs or debug output.
//
// Zeroization is best-effort: the garbage collector may have moved or copied
// the data before Wipe runs. It shrinks the window during which secrets are
// recoverable from memory, nothing more.
package secret

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
)

const redacted = "[REDACTED]"

// Buffer owns a contiguous byte region holding sensitive material.
// The zero value and the nil pointer both behave as an empty buffer.
type Buffer struct {
	data []byte
}

// New returns a Buffer holding a private copy of b.
func New(b []byte) *Buffer {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &Buffer{data: cp}
}

// NewString returns a Buffer holding a copy of s.
//
// The original string cannot be wiped (Go strings are immutable); callers
// that can obtain the secret as a byte slice should prefer New.
func NewString(s string) *Buffer {
	return New([]byte(s))
}

// Len reports the number of bytes held.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// IsEmpty reports whether the buffer holds no bytes.
func (b *Buffer) IsEmpty() bool { return b.Len() == 0 }

// Bytes returns the backing slice without copying. The view stays valid
// until Wipe is called; callers must not log it or store it beyond the
// operation that needed it.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Reveal returns the contents as a string. The returned string is a copy
// that cannot be zeroed; use it only at the edges (terminal output,
// clipboard) where a string is unavoidable.
func (b *Buffer) Reveal() string {
	if b == nil {
		return ""
	}
	return string(b.data)
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return New(nil)
	}
	return New(b.data)
}

// Equal compares two buffers in constant time with respect to the contents.
// Buffers of different lengths compare unequal.
func (b *Buffer) Equal(other *Buffer) bool {
	return subtle.ConstantTimeCompare(b.Bytes(), other.Bytes()) == 1
}

// Wipe overwrites the backing storage with zeros and drops it. The buffer
// is empty afterwards and safe to reuse or discard.
func (b *Buffer) Wipe() {
	if b == nil {
		return
	}
	WipeBytes(b.data)
	b.data = nil
}

// String implements fmt.Stringer and always redacts.
func (b *Buffer) String() string { return redacted }

// GoString implements fmt.GoStringer so %#v also redacts.
func (b *Buffer) GoString() string { return redacted }

// Format implements fmt.Formatter, covering every verb a debug print
// might use (%v, %s, %q, %x, ...).
func (b *Buffer) Format(f fmt.State, verb rune) {
	fmt.Fprint(f, redacted)
}

// LogValue implements slog.LogValuer so structured logs never carry the
// secret even when the buffer is passed as an attribute value.
func (b *Buffer) LogValue() slog.Value { return slog.StringValue(redacted) }

// MarshalJSON redacts on serialization. Buffers are never meant to be
// persisted; this is a backstop against accidental encoding.
func (b *Buffer) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// WipeBytes overwrites the given slice with zeros. It is used for transient
// key material that never gets promoted into a Buffer.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
