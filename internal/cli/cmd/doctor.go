package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"streampick/internal/config"
	"streampick/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose the extractor binary and configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := config.Load()
			path, err := deps.FindExtractor(settings.ExtractorBinary)
			if err != nil {
				return &ExitError{Code: ExitMissingDep, Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extractor:         %s\n", path)
			if used := viper.ConfigFileUsed(); used != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Config file:       %s\n", used)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Config file:       (none found, using defaults)")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Probe timeout:     %s\n", settings.ProbeTimeout)
			fmt.Fprintf(cmd.OutOrStdout(), "Probe concurrency: %d\n", settings.ProbeConcurrency)
			if settings.ProxyURL != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Proxy:             %s\n", settings.ProxyURL)
			}
			return nil
		},
	}
}
