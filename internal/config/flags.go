package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/passvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory (default: $HOME/.password_manager)
//	-i int      idle threshold in seconds before the session locks
//	-w int      watchdog tick interval in seconds
//	-b int      clipboard clear delay in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-i", "-w", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	idle := fs.Int("i", int(cfg.IdleThreshold.Seconds()), "idle threshold (in seconds)")
	tick := fs.Int("w", int(cfg.WatchdogTick.Seconds()), "watchdog tick interval (in seconds)")
	clip := fs.Int("b", int(cfg.ClipboardClearDelay.Seconds()), "clipboard clear delay (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.IdleThreshold = time.Duration(*idle) * time.Second
	cfg.WatchdogTick = time.Duration(*tick) * time.Second
	cfg.ClipboardClearDelay = time.Duration(*clip) * time.Second
}
