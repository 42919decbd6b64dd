// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/YassinCh/skilltest-buienradar/internal/analysis"
	"github.com/YassinCh/skilltest-buienradar/internal/config"
	"github.com/YassinCh/skilltest-buienradar/internal/storage"
)

const (
	analyzeCmdUsage = "analyze"
	analyzeCmdShort = "query the stored weather data"
	analyzeCmdLong  = `Query the weather data saved by the load command.
	Every query reads the current content of the configured database.`

	analyzeCmdExample = `# Find the station with the highest temperature
	skilltest analyze max-temperature

	# List the stations of a region
	skilltest analyze region Utrecht`

	maxTemperatureCmdName           = "max-temperature"
	meanTemperatureCmdName          = "mean-temperature"
	maxTemperatureDifferenceCmdName = "max-temperature-difference"
	regionCmdUsage                  = "region REGION"
)

// query prints the answer of one analysis to out.
type query func(ctx context.Context, service *analysis.Service, out io.Writer, args []string) error

// AnalyzeCmd returns the "analyze" cli command grouping every analysis query.
func AnalyzeCmd() *cobra.Command {
	flags := &settingsFlags{}
	cmd := &cobra.Command{
		Use:     analyzeCmdUsage,
		Short:   heredoc.Doc(analyzeCmdShort),
		Long:    heredoc.Doc(analyzeCmdLong),
		Example: heredoc.Doc(analyzeCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
	}

	flags.addFlags(cmd)
	cmd.AddCommand(
		queryCmd(flags, maxTemperatureCmdName, "show the station that measured the highest temperature", noArgs, maxTemperature),
		queryCmd(flags, meanTemperatureCmdName, "show the mean of every measured temperature", noArgs, meanTemperature),
		queryCmd(flags, maxTemperatureDifferenceCmdName, "show the largest gap between measured and perceived temperature", noArgs, maxTemperatureDifference),
		queryCmd(flags, regionCmdUsage, "list the stations of a region", regionArgs, stationsInRegion),
	)

	return cmd
}

func queryCmd(flags *settingsFlags, use, short string, args cobra.PositionalArgs, run query) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: heredoc.Doc(short),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              args,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := flags.settings()
			if err != nil {
				return handleError(cmd, err)
			}

			opts := &analyzeOptions{settings: settings, run: run, args: args}
			if err := opts.execute(cmd.Context(), cmd.OutOrStdout()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}
}

func regionArgs(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0 || strings.TrimSpace(args[0]) == "":
		return handleError(cmd, errNoArguments)
	case len(args) > 1:
		return handleError(cmd, fmt.Errorf("accepts 1 arg(s), received %d", len(args)))
	}

	return nil
}

// analyzeOptions holds the options set for a single query.
type analyzeOptions struct {
	settings config.Settings
	run      query
	args     []string
}

func (o *analyzeOptions) execute(ctx context.Context, out io.Writer) error {
	store, err := openStore(ctx, o.settings)
	if err != nil {
		return err
	}
	defer store.Close()

	return o.run(ctx, analysis.NewService(store), out, o.args)
}

func maxTemperature(ctx context.Context, service *analysis.Service, out io.Writer, _ []string) error {
	result, err := service.MaxTemperatureStation(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Highest temperature: %v°C measured by %s at %s\n",
		result.Temperature, describeStation(result.Station), storage.FormatTimestamp(result.Timestamp))
	return err
}

func meanTemperature(ctx context.Context, service *analysis.Service, out io.Writer, _ []string) error {
	mean, err := service.MeanTemperature(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Mean temperature: %.2f°C\n", mean)
	return err
}

func maxTemperatureDifference(ctx context.Context, service *analysis.Service, out io.Writer, _ []string) error {
	result, err := service.MaxFeelTemperatureDifference(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Largest temperature difference: %v°C (measured %v°C, feels like %v°C) at %s on %s\n",
		result.Difference, result.Temperature, result.FeelTemperature,
		describeStation(result.Station), storage.FormatTimestamp(result.Timestamp))
	return err
}

func stationsInRegion(ctx context.Context, service *analysis.Service, out io.Writer, args []string) error {
	region := strings.TrimSpace(args[0])
	stations, err := service.StationsInRegion(ctx, region)
	if err != nil {
		return err
	}

	if len(stations) == 0 {
		_, err = fmt.Fprintf(out, "No stations found in region %q\n", region)
		return err
	}

	builder := new(strings.Builder)
	fmt.Fprintf(builder, "Stations in region %q:\n", region)
	for _, station := range stations {
		fmt.Fprintf(builder, "- %s (lat %v, lon %v)\n", describeStation(station), station.Lat, station.Lon)
	}

	_, err = io.WriteString(out, builder.String())
	return err
}

func describeStation(station storage.Station) string {
	return fmt.Sprintf("%s [%d, %s]", station.Name, station.ID, station.Region)
}
