package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teatak/wordlike/ngram"
)

func newGramsCmd(opts *options) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "grams WORD",
		Short: "Print the n-grams of a word, padded with ^ and $",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 1 {
				return fmt.Errorf("--size must be at least 1, got %d", n)
			}
			out := cmd.OutOrStdout()
			for g := range ngram.Grams(args[0], n) {
				fmt.Fprintln(out, g)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "size", "n", 3, "Gram length")
	return cmd
}
