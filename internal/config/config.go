package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ugaemi/citypursuit/internal/game"
)

type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	DatabaseURL string
	LayoutFile  string

	CapturePolicy game.CapturePolicy
	StrikePolicy  game.StrikePolicy
	DebugControls bool
	Seed          int64
	TickRate      int

	// Warnings lists values that were replaced by defaults. Load runs before
	// logging is set up, so the caller logs them.
	Warnings []string
}

// TickInterval returns the session tick period for the configured rate.
func (c *Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return game.TickInterval
	}
	return time.Second / time.Duration(c.TickRate)
}

// Load reads configuration from the environment and, when CONFIG_FILE is
// set, from that file. Environment variables win over file values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("database_url", "")
	v.SetDefault("layout_file", "")
	v.SetDefault("capture_policy", game.CaptureResetDespawn.String())
	v.SetDefault("strike_policy", game.StrikeInert.String())
	v.SetDefault("debug_controls", false)
	v.SetDefault("seed", 0)
	v.SetDefault("tick_rate", game.TickRate)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("config_file", "CONFIG_FILE"); err != nil {
		return nil, fmt.Errorf("bind config file env: %w", err)
	}
	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:          v.GetInt("port"),
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
		DatabaseURL:   v.GetString("database_url"),
		LayoutFile:    v.GetString("layout_file"),
		DebugControls: v.GetBool("debug_controls"),
		Seed:          v.GetInt64("seed"),
		TickRate:      v.GetInt("tick_rate"),
	}

	capture, ok := game.ParseCapturePolicy(v.GetString("capture_policy"))
	if !ok {
		cfg.warnf("unknown capture policy %q, using %s", v.GetString("capture_policy"), capture)
	}
	cfg.CapturePolicy = capture

	strike, ok := game.ParseStrikePolicy(v.GetString("strike_policy"))
	if !ok {
		cfg.warnf("unknown strike policy %q, using %s", v.GetString("strike_policy"), strike)
	}
	cfg.StrikePolicy = strike

	if cfg.TickRate <= 0 {
		cfg.warnf("tick rate must be positive, got %d, using %d", cfg.TickRate, game.TickRate)
		cfg.TickRate = game.TickRate
	}

	return cfg, nil
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}
