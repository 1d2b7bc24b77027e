package main

import (
	"github.com/spf13/cobra"

	"github.com/pivvenit/acf-pro-installer/internal/config"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	settingsFile string
	workDir      string
	envVar       string
	configKey    string
	envFile      string
	apiVersion   string
	logLevel     string
	insecure     bool
}

func newRootCommand(env interfaces.Environment) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "acf-pro-installer",
		Short: "Add the ACF PRO license key to package downloads",
		Long: `acf-pro-installer runs downloads through a Composer-style pre-download
event and adds the ACF PRO license key to requests for the ACF PRO package.

The key is taken from the ACF_PRO_KEY environment variable, then from a .env
file in the working directory, then from the acf-pro-key setting in
composer.json, the global Composer config.json or the host_config section of
.acf-pro-installer.yml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.settingsFile, "config", "", "settings file (default <workdir>/.acf-pro-installer.yml)")
	f.StringVar(&opts.workDir, "workdir", "", "project directory (default current directory)")
	f.StringVar(&opts.envVar, "env-var", "", "environment variable holding the license key (default ACF_PRO_KEY)")
	f.StringVar(&opts.configKey, "config-key", "", "host configuration key holding the license key (default acf-pro-key)")
	f.StringVar(&opts.envFile, "env-file", "", "key file loaded from the project directory (default .env)")
	f.StringVar(&opts.apiVersion, "api-version", "", "plugin API version of the emulated host (default 2.0.0)")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	f.BoolVar(&opts.insecure, "insecure", false, "disable TLS certificate verification")

	cmd.AddCommand(
		newRewriteCommand(opts, env),
		newFetchCommand(opts, env),
		newKeyCommand(opts, env),
		newVersionCommand(),
	)
	return cmd
}

// override applies flags the user set explicitly on top of cfg
func (o *globalOptions) override(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("env-var") {
		cfg.EnvVar = o.envVar
	}
	if flags.Changed("config-key") {
		cfg.ConfigKey = o.configKey
	}
	if flags.Changed("env-file") {
		cfg.EnvFile = o.envFile
	}
	if flags.Changed("api-version") {
		cfg.PluginAPIVersion = o.apiVersion
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("insecure") {
		cfg.Insecure = o.insecure
	}
}
