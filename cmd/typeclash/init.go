package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/typeclash/internal/application/handlers"
)

var initPokeAPIURL string

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long:  "Creates a .typeclash directory with the default configuration.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	cmd.Flags().StringVar(&initPokeAPIURL, "pokeapi-url", "", "PokeAPI base URL to store instead of the public endpoint")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	basePath, err := configBasePath()
	if err != nil {
		return err
	}

	result, err := handlers.NewInitHandler().Handle(basePath, handlers.InitOptions{PokeAPIURL: initPokeAPIURL})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", result.ConfigPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Using PokeAPI at %s\n", result.PokeAPIURL)
	return nil
}
