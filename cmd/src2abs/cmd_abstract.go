package main

import (
	"errors"
	"fmt"

	"github.com/dhamidi/src2abs/abstractor"
	"github.com/dhamidi/src2abs/format"
	"github.com/dhamidi/src2abs/java/extract"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var global globalFlags
	var abs abstractionFlags
	var output string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "src2abs <input>",
		Short: "Abstract Java source code into placeholder form",
		Long: `Replace identifiers and literals of a Java source file with numbered
placeholders such as TYPE_1, METHOD_2 or STRING_1.

With -o the abstracted text is written to the output file and the mapping to
<output>.map. Without -o both are printed.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			global.configureLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = outputFormat
			}
			if err := abs.apply(cmd, cfg); err != nil {
				return err
			}
			opts, err := abstractorOptions(cfg)
			if err != nil {
				return err
			}

			input := args[0]
			if output != "" {
				_, err := abstractor.AbstractFile(cmd.Context(), input, output, opts...)
				return reportProblems(cmd, err)
			}

			src, err := abstractor.ReadSource(input)
			if err != nil {
				return err
			}
			res, err := abstractor.Abstract(cmd.Context(), src, append(opts, abstractor.WithFile(input))...)
			if err != nil {
				return reportProblems(cmd, err)
			}

			enc, err := format.New(cfg.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	global.register(cmd)
	abs.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the abstraction here and the mapping to <output>.map")
	cmd.Flags().StringVar(&outputFormat, "format", "text", fmt.Sprintf("console output format %v", format.Names()))

	cmd.AddCommand(newBatchCmd(&global))
	cmd.AddCommand(newTokensCmd())
	cmd.AddCommand(newDeclsCmd(&global))
	cmd.AddCommand(newLSPCmd(&global))

	return cmd
}

// reportProblems lists every parse problem on stderr, one per line.
func reportProblems(cmd *cobra.Command, err error) error {
	var parseErr *extract.ParseError
	if errors.As(err, &parseErr) {
		for _, p := range parseErr.Problems {
			fmt.Fprintln(cmd.ErrOrStderr(), p)
		}
		return fmt.Errorf("%d parse problem(s)", len(parseErr.Problems))
	}
	return err
}
