// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/YassinCh/skilltest-buienradar/internal/config"
)

const (
	configFlagName  = "config"
	configFlagShort = "c"
	configFlagUsage = "Path to a yaml settings file, environment variables take precedence over its values"

	envFileFlagName  = "env-file"
	envFileFlagUsage = "Path to a dotenv file read before the environment, ignored when missing"

	localOutputFlagName  = "local-output"
	localOutputFlagUsage = "If set, writes the loaded entities to stdout instead of saving them in the database"
	defaultLocalOutput   = false
)

// settingsFlags collects the CLI options used to locate the settings, shared by every command.
type settingsFlags struct {
	configPath string
	envFile    string
}

// addFlags registers the settings flags on cmd and on all its subcommands.
func (f *settingsFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.configPath, configFlagName, configFlagShort, "", configFlagUsage)
	flags.StringVar(&f.envFile, envFileFlagName, config.DefaultEnvFile, envFileFlagUsage)
}

// settings loads the application settings using the parsed flags.
func (f *settingsFlags) settings() (config.Settings, error) {
	return config.Load(config.WithFile(f.configPath), config.WithEnvFile(f.envFile))
}
