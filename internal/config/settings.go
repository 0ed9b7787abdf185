package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. NESTEGG_LOG_LEVEL
const EnvPrefix = "NESTEGG"

// Settings are the runtime knobs of the command line tools. They never change
// computed results except through the Monte Carlo seed and worker count.
type Settings struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Format   string `mapstructure:"format" validate:"required,oneof=console json csv"`
	Workers  int    `mapstructure:"workers" validate:"gte=1,lte=1024"`
	Seed     int64  `mapstructure:"seed"`
	Verbose  bool   `mapstructure:"verbose"`
}

// LoadSettings merges defaults, an optional settings file, NESTEGG_* environment
// variables and any bound flags, in increasing precedence. A non-empty
// settingsFile must exist.
func LoadSettings(settingsFile string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("format", "console")
	v.SetDefault("workers", runtime.GOMAXPROCS(0))
	v.SetDefault("seed", 0)
	v.SetDefault("verbose", false)

	if settingsFile != "" {
		v.SetConfigFile(settingsFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", settingsFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, flag := range map[string]string{
			"log_level": "log-level",
			"format":    "format",
			"workers":   "workers",
			"seed":      "seed",
			"verbose":   "verbose",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", flag, err)
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	s.LogLevel = strings.ToLower(s.LogLevel)
	s.Format = strings.ToLower(s.Format)

	if err := validator.New().Struct(&s); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &s, nil
}
