package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pivvenit/acf-pro-installer/internal/external-adapters/host"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "acf-pro-installer %s (plugin API %s)\n", version, host.PluginAPIVersion)
		},
	}
}
