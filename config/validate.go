package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dhamidi/src2abs/format"
	"github.com/dhamidi/src2abs/java/extract"
	"github.com/gobwas/glob"
)

var (
	ErrInvalidGranularity = errors.New("invalid granularity")
	ErrInvalidFormat      = errors.New("invalid output format")
	ErrInvalidWorkers     = errors.New("invalid worker count")
	ErrInvalidPattern     = errors.New("invalid file pattern")
)

// Validate reports every invalid setting at once.
func Validate(cfg *Config) error {
	var errs []error

	if _, err := extract.ParseGranularity(cfg.Granularity); err != nil {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidGranularity, cfg.Granularity))
	}

	if !slices.Contains(format.Names(), cfg.Format) {
		errs = append(errs, fmt.Errorf("%w: %q (valid: %v)", ErrInvalidFormat, cfg.Format, format.Names()))
	}

	if err := validateBatch(&cfg.Batch); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validateBatch(cfg *BatchConfig) error {
	var errs []error

	if cfg.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	for _, pattern := range append(slices.Clone(cfg.Include), cfg.Exclude...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	return errors.Join(errs...)
}
