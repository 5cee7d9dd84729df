package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"streampick/internal/catalog"
	"streampick/internal/extractor"
	"streampick/internal/model"
	"streampick/internal/util/deps"
	"streampick/internal/validate"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "validate [url|file]",
		Short:         "Show the per-format validation verdicts",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		PreRunE:       runPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in runInputs
			if v := cmd.Context().Value(runInputsKey); v != nil {
				in = v.(runInputs)
			}

			meta, err := loadMetadata(cmd, in)
			if err != nil {
				return err
			}
			cat := catalog.New(meta)

			validator := validate.New(
				validate.WithBlocklists(validate.Blocklists{
					VideoCodecPrefixes: in.Settings.VideoCodecBlocklist,
					AudioCodecPrefixes: in.Settings.AudioCodecBlocklist,
				}),
				validate.WithProber(validate.NewHTTPProber(in.Settings.ProxyURL)),
				validate.WithProbeTimeout(in.Settings.ProbeTimeout),
				validate.WithProbeConcurrency(in.Settings.ProbeConcurrency),
			)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FORMAT\tKIND\tVALID\tREASON")
			pools := [][]model.Format{cat.Combined, cat.VideoOnly, cat.AudioOnly}
			for _, pool := range pools {
				for _, f := range pool {
					res := validator.Validate(cmd.Context(), f, in.Resolve.CheckAccessibility)
					reason := "-"
					if !res.Valid {
						reason = res.Reason.String()
					}
					fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", f.ID, f.Classify(), res.Valid, reason)
				}
			}
			return w.Flush()
		},
	}
	bindRunFlags(cmd.Flags())
	return cmd
}

func loadMetadata(cmd *cobra.Command, in runInputs) (model.Metadata, error) {
	if in.Source.File != "" {
		meta, err := extractor.ParseFile(in.Source.File)
		if err != nil {
			return model.Metadata{}, &ExitError{Code: ExitCLIError, Err: err}
		}
		return meta, nil
	}
	path, err := deps.FindExtractor(in.Settings.ExtractorBinary)
	if err != nil {
		return model.Metadata{}, &ExitError{Code: ExitMissingDep, Err: err}
	}
	meta, err := extractor.Fetch(cmd.Context(), in.Source.URL, extractor.Options{
		BinaryPath: path,
		Verbose:    in.Resolve.Verbose,
	})
	if err != nil {
		return model.Metadata{}, &ExitError{Code: ExitExtractorError, Err: err}
	}
	return meta, nil
}
