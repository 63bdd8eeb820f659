// Package config loads settings from flags, environment and an optional
// gamepadbridge.yaml, in that order of precedence.
package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	// Listen is the HTTP listen address for the event/command surface.
	Listen string `mapstructure:"listen"`
	// Tick is the poll loop interval. The default gives ~120Hz.
	Tick time.Duration `mapstructure:"tick"`
}

// Load parses command line flags and merges them with environment variables
// (GAMEPADBRIDGE_*) and an optional config file next to the binary.
func Load(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("gamepadbridge", pflag.ContinueOnError)
	flags.String("listen", ":8080", "HTTP listen address")
	flags.Duration("tick", 8*time.Millisecond, "poll loop tick interval")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("GAMEPADBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("gamepadbridge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	} else {
		log.Printf("Loaded config from %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
