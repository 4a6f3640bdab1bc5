// Package config holds runtime settings for the vault.
package config

import "time"

// Config holds runtime settings.
//
// Fields:
//   - DataDir: directory holding the database file. Empty means
//     $HOME/.password_manager, resolved at startup.
//   - DatabaseFile: SQLite file name inside DataDir.
//   - IdleThreshold: inactivity span after which the session is locked.
//   - WatchdogTick: how often the idle watchdog inspects the session.
//   - ClipboardClearDelay: how long a copied secret stays on the clipboard.
type Config struct {
	DataDir             string
	DatabaseFile        string
	IdleThreshold       time.Duration
	WatchdogTick        time.Duration
	ClipboardClearDelay time.Duration
}

// LoadDefaults populates c with the stock settings.
func (c *Config) LoadDefaults() {
	c.DataDir = ""
	c.DatabaseFile = "passwords.sqlite"
	c.IdleThreshold = 3 * time.Minute
	c.WatchdogTick = 10 * time.Second
	c.ClipboardClearDelay = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file is given) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
