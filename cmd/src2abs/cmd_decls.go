package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/src2abs/abstractor"
	"github.com/spf13/cobra"
)

func newDeclsCmd(global *globalFlags) *cobra.Command {
	var abs abstractionFlags

	cmd := &cobra.Command{
		Use:   "decls <file>",
		Short: "Dump the type, method and annotation names found in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			if err := abs.apply(cmd, cfg); err != nil {
				return err
			}
			opts, err := abstractorOptions(cfg)
			if err != nil {
				return err
			}

			src, err := abstractor.ReadSource(args[0])
			if err != nil {
				return err
			}
			decls, err := abstractor.Declarations(cmd.Context(), src, append(opts, abstractor.WithFile(args[0]))...)
			if err != nil {
				return reportProblems(cmd, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "types: %s\n", strings.Join(decls.Types.Sorted(), " "))
			fmt.Fprintf(out, "methods: %s\n", strings.Join(decls.Methods.Sorted(), " "))
			fmt.Fprintf(out, "annotations: %s\n", strings.Join(decls.Annotations.Sorted(), " "))
			return nil
		},
	}

	abs.register(cmd)
	return cmd
}
