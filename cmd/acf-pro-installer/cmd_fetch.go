package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	adapters "github.com/pivvenit/acf-pro-installer/internal/domain-adapters/gateways"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces"
)

func newFetchCommand(opts *globalOptions, env interfaces.Environment) *cobra.Command {
	var (
		output   string
		checksum string
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download <url> through the pre-download event",
		Example: `  acf-pro-installer fetch -o acf-pro.zip "https://connect.advancedcustomfields.com/index.php?p=pro&a=download&t=5.12.2"
  acf-pro-installer fetch -o - "https://example.com/other.zip" > other.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var progress io.Writer
			if !quiet && output != "-" {
				progress = cmd.ErrOrStderr()
			}

			a, err := newApp(cmd, opts, env, progress)
			if err != nil {
				return err
			}
			defer a.close()

			if output == "-" {
				if checksum != "" {
					return fmt.Errorf("--checksum needs an output file")
				}
				_, err := a.dispatcher.Download(cmd.Context(), args[0], a.transport(), cmd.OutOrStdout())
				return err
			}

			//nolint:gosec // G304: output path comes from the user
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}

			n, err := a.dispatcher.Download(cmd.Context(), args[0], a.transport(), f)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err == nil && checksum != "" {
				err = adapters.NewChecksumVerifier().VerifyChecksum(cmd.Context(), output, checksum)
			}
			if err != nil {
				//nolint:errcheck // best effort cleanup of a partial download
				os.Remove(output)
				return err
			}

			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "\nDownloaded %d bytes to %s\n", n, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, - for stdout")
	cmd.Flags().StringVar(&checksum, "checksum", "", "expected SHA-1 or SHA-256 of the download")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not show progress")
	//nolint:errcheck // flag is defined above
	cmd.MarkFlagRequired("output")
	return cmd
}
