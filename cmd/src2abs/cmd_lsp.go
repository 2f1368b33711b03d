package main

import (
	"github.com/dhamidi/src2abs/lsp"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func newLSPCmd(global *globalFlags) *cobra.Command {
	var abs abstractionFlags

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
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
			return lsp.NewServer(version, opts...).RunStdio()
		},
	}

	abs.register(cmd)
	return cmd
}
