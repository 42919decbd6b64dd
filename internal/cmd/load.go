// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/YassinCh/skilltest-buienradar/internal/buienradar"
	"github.com/YassinCh/skilltest-buienradar/internal/config"
	"github.com/YassinCh/skilltest-buienradar/internal/destination/database"
	"github.com/YassinCh/skilltest-buienradar/internal/destination/writer"
	"github.com/YassinCh/skilltest-buienradar/internal/logger"
	"github.com/YassinCh/skilltest-buienradar/internal/source"
	"github.com/YassinCh/skilltest-buienradar/internal/storage"
)

const (
	loadCmdUsage = "load"
	loadCmdShort = "load the current weather data from Buienradar"
	loadCmdLong  = `Load the current weather data from Buienradar.
	The feed is downloaded once for the stations and once for the measurements,
	every station is created or updated and every new measurement is saved.
	A measurement already stored for the same station and timestamp is ignored.`

	loadCmdExample = `# Load the feed into the configured database
	skilltest load

	# Print the entities instead of saving them
	skilltest load --local-output`

	loadLoggerName = "skilltest:load"
)

// LoadCmd returns the "load" cli command that runs the Buienradar pipelines.
func LoadCmd() *cobra.Command {
	flags := &loadFlags{}
	cmd := &cobra.Command{
		Use:     loadCmdUsage,
		Short:   heredoc.Doc(loadCmdShort),
		Long:    heredoc.Doc(loadCmdLong),
		Example: heredoc.Doc(loadCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              noArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.toOptions(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// loadFlags holds the flags for the "load" command.
type loadFlags struct {
	settingsFlags
	localOutput bool
}

// addFlags adds the cli flags to the cobra command.
func (f *loadFlags) addFlags(cmd *cobra.Command) {
	f.settingsFlags.addFlags(cmd)
	cmd.Flags().BoolVar(&f.localOutput, localOutputFlagName, defaultLocalOutput, localOutputFlagUsage)
}

// toOptions converts the load flags to loadOptions.
func (f *loadFlags) toOptions(cmd *cobra.Command) (*loadOptions, error) {
	settings, err := f.settings()
	if err != nil {
		return nil, err
	}

	var output io.Writer
	if f.localOutput {
		output = cmd.OutOrStdout()
	}

	return &loadOptions{
		settings: settings,
		output:   output,
	}, nil
}

// loadOptions holds the options set for the current load.
type loadOptions struct {
	settings config.Settings
	// output, when set, receives the entities instead of the database.
	output io.Writer
}

// execute fetches the feed and loads stations and measurements.
func (o *loadOptions) execute(ctx context.Context) error {
	log := logger.FromContext(ctx).WithName(loadLoggerName)
	pipelines := buienradar.NewPipelines(source.NewHTTPSource(o.settings.SourceURL))

	log.Info("loading data from Buienradar", "sourceUrl", o.settings.SourceURL)
	if o.output != nil {
		return pipelines.Load(ctx, buienradar.Loaders{
			Stations:     writer.NewLoader[storage.Station](o.output, "station"),
			Measurements: writer.NewLoader[storage.Measurement](o.output, "measurement"),
		})
	}

	store, err := openStore(ctx, o.settings)
	if err != nil {
		return err
	}
	defer store.Close()

	err = pipelines.Load(ctx, buienradar.Loaders{
		Stations:     database.NewLoader[storage.Station](store),
		Measurements: database.NewLoader[storage.Measurement](store),
	})
	if err != nil {
		log.Error("error loading data", "error", err.Error())
		return err
	}

	log.Info("data loaded successfully")
	return nil
}
