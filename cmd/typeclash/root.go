package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/typeclash/internal/application/handlers"
	"github.com/ersonp/typeclash/internal/domain/ports"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "typeclash <name|id>...",
		Short: "Pick the creature with the best type advantage",
		Long: `Compares creatures by type effectiveness and prints the one holding the
advantage. When several creatures share the best type score, the one with the
highest base stat total wins.`,
		Example:       "  typeclash bulbasaur charmander\n  typeclash --roster starters.yaml 1 4 7",
		Version:       version,
		Args:          requireCreatures,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&globalRoster, "roster", "r", "", "Read creatures from a JSON or YAML roster file instead of PokeAPI")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")
	rootCmd.PersistentFlags().StringVar(&globalConfigDir, "config-dir", "", "Directory containing .typeclash/config.yaml (default: current directory)")

	rootCmd.AddCommand(
		newScoresCmd(),
		newInitCmd(),
	)

	return rootCmd
}

// requireCreatures rejects invocations without any creature identifier.
func requireCreatures(_ *cobra.Command, args []string) error {
	if len(args) < 1 {
		return errInputFormat
	}
	return nil
}

func runCompare(cmd *cobra.Command, ids []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.CompareHandler.Handle(ctx, ids)
		if err != nil {
			return userError(err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Winner.Name())
		return nil
	})
}

// userError maps domain errors to the messages shown on the command line.
func userError(err error) error {
	switch {
	case errors.Is(err, handlers.ErrNoCreatures):
		return errInputFormat
	case errors.Is(err, ports.ErrCreatureNotFound):
		return fmt.Errorf("%w (%v)", errInvalidData, err)
	default:
		return err
	}
}
