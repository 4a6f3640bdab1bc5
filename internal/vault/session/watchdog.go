package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/passvault/internal/logging"
)

// Watchdog periodically checks the session manager and forces a sign-out
// once the idle threshold is exceeded. It inspects the manager's live state
// on every tick rather than a captured snapshot, so a login that happens
// after a sign-out is observed correctly.
type Watchdog struct {
	manager *Manager
	tick    time.Duration
	logger  logging.Logger

	// onExpire tells the view layer to navigate home and show the
	// "logged out due to inactivity" notice. Never called with secrets.
	onExpire func()
}

// NewWatchdog builds a watchdog over the given manager. onExpire may be nil.
func NewWatchdog(manager *Manager, tick time.Duration, logger logging.Logger, onExpire func()) *Watchdog {
	return &Watchdog{manager: manager, tick: tick, logger: logger, onExpire: onExpire}
}

// Run blocks until ctx is cancelled, checking the session once per tick.
// The sign-out transition is idempotent, so overlapping causes (user logout
// racing the timer) cannot fire the notification twice.
func (w *Watchdog) Run(ctx context.Context) {
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if w.manager.ExpireIfIdle() {
				w.logger.Info(ctx, "session expired due to inactivity")
				if w.onExpire != nil {
					w.onExpire()
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
