package main

import (
	"fmt"

	"github.com/dhamidi/src2abs/abstractor"
	"github.com/dhamidi/src2abs/config"
	"github.com/dhamidi/src2abs/idiom"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	verbose    int
	logFile    string
}

func (g *globalFlags) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "config file (default .src2abs.yaml in the current directory)")
	flags.CountVarP(&g.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&g.logFile, "log-file", "", "write logs to this file instead of stderr")
}

func (g *globalFlags) configureLogging() {
	var path *string
	if g.logFile != "" {
		path = &g.logFile
	}
	commonlog.Configure(g.verbose, path)
}

func (g *globalFlags) loadConfig() (*config.Config, error) {
	var loader config.Loader
	if g.configPath != "" {
		loader = config.NewFileLoader(g.configPath)
	} else {
		loader = config.NewLoader(".")
	}
	return loader.Load()
}

// abstractionFlags override the abstraction settings of the config file.
type abstractionFlags struct {
	granularity  string
	idioms       string
	greedyChains bool
	noNeutralize bool
}

func (a *abstractionFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&a.granularity, "granularity", "g", "class", "input granularity: class or method (any case)")
	flags.StringVarP(&a.idioms, "idioms", "i", "", "file with one idiom per line to keep verbatim")
	flags.BoolVar(&a.greedyChains, "greedy-chains", false, "extend identifier chains across every member access")
	flags.BoolVar(&a.noNeutralize, "no-neutralize", false, "keep \"//\" inside string literals as written")
}

func (a *abstractionFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("granularity") {
		cfg.Granularity = a.granularity
	}
	if flags.Changed("idioms") {
		cfg.Idioms = a.idioms
	}
	if flags.Changed("greedy-chains") {
		cfg.GreedyChains = a.greedyChains
	}
	if flags.Changed("no-neutralize") {
		cfg.NeutralizeStrings = !a.noNeutralize
	}
	return config.Validate(cfg)
}

// abstractorOptions turns the effective settings into pipeline options.
func abstractorOptions(cfg *config.Config) ([]abstractor.Option, error) {
	g, err := cfg.ParsedGranularity()
	if err != nil {
		return nil, err
	}
	opts := []abstractor.Option{
		abstractor.WithGranularity(g),
		abstractor.WithGreedyChains(cfg.GreedyChains),
		abstractor.WithNeutralizedStrings(cfg.NeutralizeStrings),
	}
	if cfg.Idioms != "" {
		idioms, err := idiom.LoadFile(cfg.Idioms)
		if err != nil {
			return nil, fmt.Errorf("load idioms: %w", err)
		}
		opts = append(opts, abstractor.WithIdioms(idioms))
	}
	return opts, nil
}
