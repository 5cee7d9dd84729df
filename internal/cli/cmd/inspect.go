package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"streampick/internal/catalog"
	"streampick/internal/merge"
	"streampick/internal/model"
	format "streampick/internal/util/format"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "inspect [url|file]",
		Short:         "Print the ranked candidate list without selecting anything",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		PreRunE:       runPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in runInputs
			if v := cmd.Context().Value(runInputsKey); v != nil {
				in = v.(runInputs)
			}
			svcOpts, err := serviceOptions(in)
			if err != nil {
				return err
			}
			session, err := resolveSession(cmd.Context(), in, svcOpts)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tFORMAT\tKIND\tRESOLUTION\tEXT\tSIZE\tSCORE")
			for i, c := range session.Candidates {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%.0f\n",
					i, candidateID(c), candidateKind(c),
					resolutionCell(c.Format), c.Format.Extension,
					sizeCell(c.Format), c.Score())
			}
			for i, f := range session.AudioOnly {
				fmt.Fprintf(w, "a%d\t%s\taudio-only\t-\t%s\t%s\t%.0f\n",
					i, f.ID, f.Extension, sizeCell(f), catalog.Score(f))
			}
			return w.Flush()
		},
	}
	bindRunFlags(cmd.Flags())
	return cmd
}

func candidateID(c merge.Candidate) string {
	if c.Merged() {
		return c.Format.ID + "+" + c.Audio.ID
	}
	return c.Format.ID
}

func candidateKind(c merge.Candidate) string {
	if c.Merged() {
		return "merged"
	}
	return "combined"
}

func resolutionCell(f model.Format) string {
	if w, h, ok := catalog.Resolve(f); ok {
		return fmt.Sprintf("%dx%d", w, h)
	}
	return "-"
}

func sizeCell(f model.Format) string {
	size := f.FileSizeBytes
	if size == 0 {
		size = f.FileSizeApproxBytes
	}
	if size == 0 {
		return "-"
	}
	return format.HumanizeBytes(size)
}
