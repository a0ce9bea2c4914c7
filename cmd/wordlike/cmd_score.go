package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teatak/wordlike/scorer"
)

func newScoreCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "score WORD...",
		Short: "Print each word's composite key and its per-length raw scores",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, corpus, err := opts.loadScorer(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, word := range args {
				components := sc.Breakdown(word)
				var parts []string
				for _, c := range components {
					parts = append(parts, fmt.Sprintf("n=%d:%d/%d", c.Size, c.Raw, c.Windows))
				}
				known := ""
				if corpus.Contains(word) {
					known = "\t(in corpus)"
				}
				fmt.Fprintf(out, "%s\t%.4f\t%s%s\n", word, scorer.KeyOf(components), strings.Join(parts, " "), known)
			}
			return nil
		},
	}
}
