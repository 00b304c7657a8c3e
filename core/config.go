package core

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"hamuart/common"
	"hamuart/uart"
)

// Config holds the bench-level parameters of the simulation core. The
// framing itself (4 data bits, 7 code bits, start/stop) is fixed and
// not configurable.
type Config struct {
	// Oversample is the number of clock cycles per UART bit period.
	Oversample int

	// ResetCycles is how long Core.Reset holds the reset line. The
	// reset is level-sensitive and needs at least two cycles to
	// propagate everywhere.
	ResetCycles int

	// LogLevel is the minimum severity the bench logger emits.
	LogLevel common.Severity
}

// DefaultConfig returns the canonical configuration: 8 cycles per bit,
// a 2-cycle reset hold, warnings and up.
func DefaultConfig() Config {
	return Config{
		Oversample:  uart.DefaultOversample,
		ResetCycles: 2,
		LogLevel:    common.SeverityWarning,
	}
}

// Validate checks the configuration for values the model cannot run
// with.
func (cfg Config) Validate() error {
	if cfg.Oversample < 2 {
		return errors.Errorf("oversample factor %d too small: need at least 2 cycles per bit", cfg.Oversample)
	}
	if cfg.ResetCycles < 2 {
		return errors.Errorf("reset hold of %d cycles too short: reset needs at least 2 cycles to propagate", cfg.ResetCycles)
	}
	return nil
}

// LoadConfig reads a bench configuration file. The format is the usual
// ini-style key=value with [sections]; unknown keys are ignored so
// bench files can carry settings for other tools.
//
//	[core]
//	cycles_per_bit = 8
//	reset_cycles = 2
//
//	[log]
//	level = debug
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read bench config")
	}

	cfg := DefaultConfig()
	section := ""
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.Trim(line, "[]"))
			continue
		}

		key, value, ok := splitKV(line)
		if !ok {
			continue
		}

		switch section {
		case "core":
			switch key {
			case "cycles_per_bit":
				v, err := strconv.Atoi(value)
				if err != nil {
					return Config{}, errors.Wrapf(err, "%s:%d: cycles_per_bit", path, i+1)
				}
				cfg.Oversample = v
			case "reset_cycles":
				v, err := strconv.Atoi(value)
				if err != nil {
					return Config{}, errors.Wrapf(err, "%s:%d: reset_cycles", path, i+1)
				}
				cfg.ResetCycles = v
			}
		case "log":
			if key == "level" {
				sev, err := parseSeverity(value)
				if err != nil {
					return Config{}, errors.Wrapf(err, "%s:%d", path, i+1)
				}
				cfg.LogLevel = sev
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

func splitKV(line string) (string, string, bool) {
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key := strings.ToLower(strings.TrimSpace(parts[0]))
	value := strings.TrimSpace(parts[1])
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}

func parseSeverity(value string) (common.Severity, error) {
	switch strings.ToLower(value) {
	case "debug":
		return common.SeverityDebug, nil
	case "info":
		return common.SeverityInfo, nil
	case "warning", "warn":
		return common.SeverityWarning, nil
	case "error":
		return common.SeverityError, nil
	}
	return 0, errors.Errorf("unknown log level %q", value)
}
