// Package config loads src2abs settings from defaults, an optional
// .src2abs.yaml file and SRC2ABS_* environment variables.
package config

import (
	"runtime"

	"github.com/dhamidi/src2abs/java/extract"
)

// Config holds every setting the command line tools read.
type Config struct {
	Granularity       string      `yaml:"granularity" mapstructure:"granularity"`               // "class" or "method", any case
	Idioms            string      `yaml:"idioms" mapstructure:"idioms"`                         // path of the idioms file
	GreedyChains      bool        `yaml:"greedy_chains" mapstructure:"greedy_chains"`           // extend chains across every member access
	NeutralizeStrings bool        `yaml:"neutralize_strings" mapstructure:"neutralize_strings"` // rewrite "//" inside string literals
	Format            string      `yaml:"format" mapstructure:"format"`                         // console output format
	Batch             BatchConfig `yaml:"batch" mapstructure:"batch"`
}

// BatchConfig drives directory-wide abstraction.
type BatchConfig struct {
	Workers int      `yaml:"workers" mapstructure:"workers"`
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns relative to the batch root
	Exclude []string `yaml:"exclude" mapstructure:"exclude"`
}

func Default() *Config {
	return &Config{
		Granularity:       extract.Class.String(),
		NeutralizeStrings: true,
		Format:            "text",
		Batch: BatchConfig{
			Workers: runtime.NumCPU(),
			Include: []string{"**.java"},
			Exclude: []string{},
		},
	}
}

// ParsedGranularity returns the granularity setting as an extract value.
func (c *Config) ParsedGranularity() (extract.Granularity, error) {
	return extract.ParseGranularity(c.Granularity)
}
