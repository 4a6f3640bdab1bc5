// Package clipboard places secrets on the system clipboard and clears them
// again after a bounded interval.
package clipboard

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/secret"
)

// Writer abstracts the text channel of the system clipboard so tests can
// substitute a fake.
type Writer interface {
	WriteAll(text string) error
}

// System is the real clipboard backed by github.com/atotto/clipboard.
type System struct{}

func (System) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// afterFunc is a test seam for time.AfterFunc.
var afterFunc = time.AfterFunc

// Gate copies secrets to the clipboard with a scheduled best-effort clear.
type Gate struct {
	w      Writer
	logger logging.Logger
}

// NewGate builds a Gate over the given writer.
func NewGate(w Writer, logger logging.Logger) *Gate {
	return &Gate{w: w, logger: logger}
}

// CopyWithTimeout places the secret on the clipboard and schedules an empty
// write after delay. The clear is fire-and-forget and must survive
// sign-out, so the timer captures only the writer, never the session.
// If another application overwrites the clipboard sooner, that is fine.
func (g *Gate) CopyWithTimeout(s *secret.Buffer, delay time.Duration) (string, error) {
	if err := g.w.WriteAll(s.Reveal()); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrClipboard, err)
	}

	w, logger := g.w, g.logger
	afterFunc(delay, func() {
		if err := w.WriteAll(""); err != nil {
			// Best effort only; a failed clear is logged and swallowed.
			logger.Warn(context.Background(), "clipboard clear failed", "error", err)
		}
	})

	return fmt.Sprintf("Copied to clipboard! Clearing in %d seconds.", int(delay.Seconds())), nil
}
