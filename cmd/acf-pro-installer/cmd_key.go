package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pivvenit/acf-pro-installer/internal/domain/entities"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces"
)

func newKeyCommand(opts *globalOptions, env interfaces.Environment) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show where the license key is found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts, env, nil)
			if err != nil {
				return err
			}
			defer a.close()

			key, source, ok := a.keys.Resolve()
			if !ok {
				return &entities.MissingKeyError{EnvVar: a.cfg.EnvVar}
			}

			if !reveal {
				key = entities.MaskKey(key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (from %s)\n", key, source)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the license key instead of masking it")
	return cmd
}
