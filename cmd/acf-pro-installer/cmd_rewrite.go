package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pivvenit/acf-pro-installer/internal/domain/entities"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces"
)

func newRewriteCommand(opts *globalOptions, env interfaces.Environment) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "rewrite <url>",
		Short: "Print the URL a download of <url> would fetch",
		Example: `  acf-pro-installer rewrite "https://connect.advancedcustomfields.com/index.php?p=pro&a=download&t=5.12.2"
  acf-pro-installer rewrite --api-version 1.1.0 --reveal "https://connect.advancedcustomfields.com/index.php?p=pro&a=download"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, env, nil)
			if err != nil {
				return err
			}
			defer a.close()

			p, err := a.dispatcher.Prepare(cmd.Context(), args[0], a.transport())
			if err != nil {
				return err
			}

			out := p.URL
			if !reveal {
				out = entities.MaskURLKey(out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the license key instead of masking it")
	return cmd
}
