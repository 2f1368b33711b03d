package main

import (
	"fmt"

	"github.com/dhamidi/src2abs/abstractor"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var noNeutralize bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the token stream fed to the abstraction engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := abstractor.ReadSource(args[0])
			if err != nil {
				return err
			}
			tokens, err := abstractor.Tokens(src,
				abstractor.WithFile(args[0]),
				abstractor.WithNeutralizedStrings(!noNeutralize))
			if err != nil {
				return err
			}
			for _, tok := range tokens {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noNeutralize, "no-neutralize", false, "keep \"//\" inside string literals as written")
	return cmd
}
