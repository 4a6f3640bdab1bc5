package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/passvault/internal/flagx"
	"github.com/dmitrijs2005/passvault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations can
// be given either as strings like "3m" or as integer nanoseconds.
type JsonConfig struct {
	DataDir             string         `json:"data_dir"`
	DatabaseFile        string         `json:"database_file"`
	IdleThreshold       timex.Duration `json:"idle_threshold"`
	WatchdogTick        timex.Duration `json:"watchdog_tick"`
	ClipboardClearDelay timex.Duration `json:"clipboard_clear_delay"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flag. Absent file path means no overlay. Zero-valued fields in
// the file leave the corresponding defaults untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.DatabaseFile != "" {
		cfg.DatabaseFile = jc.DatabaseFile
	}
	if jc.IdleThreshold.Duration != 0 {
		cfg.IdleThreshold = jc.IdleThreshold.Duration
	}
	if jc.WatchdogTick.Duration != 0 {
		cfg.WatchdogTick = jc.WatchdogTick.Duration
	}
	if jc.ClipboardClearDelay.Duration != 0 {
		cfg.ClipboardClearDelay = jc.ClipboardClearDelay.Duration
	}
}
