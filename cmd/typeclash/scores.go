package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores <name|id>...",
		Short: "Show the type advantage score of every creature",
		Long: `Prints each creature's type advantage score and base stat total, marks
the creatures favoured by type, and names the overall winner.`,
		Args: requireCreatures,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScores(cmd, args)
		},
	}
}

func runScores(cmd *cobra.Command, ids []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.CompareHandler.HandleScores(ctx, ids)
		if err != nil {
			return userError(err)
		}

		out := cmd.OutOrStdout()
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPES\tSCORE\tSTATS\tFAVOURED")
		for _, r := range result.Ranking.Ranks {
			favoured := ""
			if r.Favoured {
				favoured = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
				r.Creature.Name(),
				strings.Join(r.Creature.Types(), "/"),
				r.Score,
				r.StatTotal,
				favoured,
			)
		}
		w.Flush()

		if len(result.Ranking.Favoured) > 1 {
			fmt.Fprintf(out, "\nWinner: %s (base stat tiebreak)\n", result.Ranking.Winner.Name())
		} else {
			fmt.Fprintf(out, "\nWinner: %s\n", result.Ranking.Winner.Name())
		}
		return nil
	})
}
