// Package config loads fgs's runtime configuration from flags, the
// FGS_* environment, a config file, and built-in defaults, in that
// order of precedence, using viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every knob the run command exposes.
type Config struct {
	Input       string `mapstructure:"input"`
	TrainDir    string `mapstructure:"train"`
	WholeGenome bool   `mapstructure:"whole-genome"`
	Threads     int    `mapstructure:"threads"`
	AAOut       string `mapstructure:"aa-out"`
	DNAOut      string `mapstructure:"dna-out"`
	MetaOut     string `mapstructure:"meta-out"`
	Format      string `mapstructure:"format"`
	TrainCache  string `mapstructure:"train-cache"`
	Verbose     bool   `mapstructure:"verbose"`
}

const envPrefix = "FGS"

// Defaults are applied before the config file, environment, or flags are
// read, so any of those can override them.
func Defaults() map[string]any {
	return map[string]any{
		"train":        "train",
		"whole-genome": false,
		"threads":      0,
		"format":       "tsv",
	}
}

// Load builds a Config from flags (highest precedence), FGS_* environment
// variables, an optional config file, then the defaults above.
func Load(flags *pflag.FlagSet, cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, val := range Defaults() {
		v.SetDefault(key, val)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
