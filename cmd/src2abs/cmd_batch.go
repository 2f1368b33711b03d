package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dhamidi/src2abs/batch"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newBatchCmd(global *globalFlags) *cobra.Command {
	var abs abstractionFlags
	var outDir string
	var include []string
	var exclude []string
	var workers int
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Abstract every Java file below a directory and report clones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("include") {
				cfg.Batch.Include = include
			}
			if cmd.Flags().Changed("exclude") {
				cfg.Batch.Exclude = exclude
			}
			if cmd.Flags().Changed("workers") {
				cfg.Batch.Workers = workers
			}
			if err := abs.apply(cmd, cfg); err != nil {
				return err
			}
			opts, err := abstractorOptions(cfg)
			if err != nil {
				return err
			}

			runnerOpts := []batch.Option{batch.WithAbstractorOptions(opts...)}
			if !noProgress {
				var bar *progressbar.ProgressBar
				runnerOpts = append(runnerOpts, batch.WithProgress(func(done, total int, f batch.FileResult) {
					if bar == nil {
						bar = progressbar.NewOptions(total,
							progressbar.OptionSetWriter(cmd.ErrOrStderr()),
							progressbar.OptionSetDescription("Abstracting files"),
							progressbar.OptionSetWidth(40),
							progressbar.OptionShowCount(),
							progressbar.OptionShowIts(),
							progressbar.OptionSetItsString("files/s"),
							progressbar.OptionThrottle(65*time.Millisecond),
							progressbar.OptionShowElapsedTimeOnFinish(),
							progressbar.OptionOnCompletion(func() {
								fmt.Fprintln(cmd.ErrOrStderr())
							}),
						)
					}
					bar.Add(1)
				}))
			}

			report, err := batch.New(runnerOpts...).Run(cmd.Context(), batch.Request{
				Root:    args[0],
				OutDir:  outDir,
				Include: cfg.Batch.Include,
				Exclude: cfg.Batch.Exclude,
				Workers: cfg.Batch.Workers,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range report.Files {
				if f.Status == batch.StatusFailed {
					fmt.Fprintf(out, "FAILED %s: %s\n", f.Path, f.Error)
				}
			}
			for _, group := range report.Clones {
				fmt.Fprintf(out, "clones: %s\n", strings.Join(group, ", "))
			}
			fmt.Fprintf(out, "%d abstracted, %d failed, %d clone groups in %s\n",
				report.Completed(), report.Failed(), len(report.Clones),
				report.EndedAt.Sub(report.StartedAt).Round(time.Millisecond))

			if report.Failed() > 0 {
				return fmt.Errorf("%d file(s) failed", report.Failed())
			}
			return nil
		},
	}

	abs.register(cmd)
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "directory for <file>.abs and <file>.abs.map (nothing is written when empty)")
	cmd.Flags().StringSliceVar(&include, "include", nil, "glob patterns of files to abstract (default **.java)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "glob patterns of files to skip")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of files abstracted in parallel (default number of CPUs)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "do not show a progress bar")

	return cmd
}
