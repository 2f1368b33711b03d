package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// FileName is the base name of the config file searched in the root
	// directory.
	FileName  = ".src2abs"
	EnvPrefix = "SRC2ABS"
)

type Loader interface {
	// Load merges defaults, the config file and environment variables, in
	// increasing priority.
	Load() (*Config, error)
}

type loader struct {
	rootDir string
	file    string
}

// NewLoader searches rootDir for .src2abs.yaml.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// NewFileLoader reads the given config file, which must exist.
func NewFileLoader(path string) Loader {
	return &loader{file: path}
}

func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.file != "" {
		if _, err := os.Stat(l.file); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		v.SetConfigFile(l.file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	// SRC2ABS_BATCH_WORKERS overrides batch.workers.
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range []string{
		"granularity",
		"idioms",
		"greedy_chains",
		"neutralize_strings",
		"format",
		"batch.workers",
		"batch.include",
		"batch.exclude",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("granularity", defaults.Granularity)
	v.SetDefault("idioms", defaults.Idioms)
	v.SetDefault("greedy_chains", defaults.GreedyChains)
	v.SetDefault("neutralize_strings", defaults.NeutralizeStrings)
	v.SetDefault("format", defaults.Format)

	v.SetDefault("batch.workers", defaults.Batch.Workers)
	v.SetDefault("batch.include", defaults.Batch.Include)
	v.SetDefault("batch.exclude", defaults.Batch.Exclude)
}
