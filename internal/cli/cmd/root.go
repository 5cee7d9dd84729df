package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"streampick/internal/config"
)

const (
	ExitOK             = 0
	ExitCLIError       = 1
	ExitMissingDep     = 2
	ExitExtractorError = 3
	ExitSelectionError = 4
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "streampick [url|file]",
		Short:         "Resolve, rank, and pick media formats for download",
		Long:          "Streampick takes the raw format list a metadata extractor reports for a video, pairs video-only streams with the best audio stream, filters out DRM-protected and unsupported formats, and walks you through picking what to download. The result is a download configuration emitted as JSON for the actual downloader.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		PreRunE:       runPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecute(cmd, args, runMode{ForceTUI: false})
		},
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().String("extractor-binary", "", "Path to yt-dlp or youtube-dl")
	root.PersistentFlags().String("proxy", "", "Proxy URL for accessibility probes")
	root.PersistentFlags().String("subtitle-languages", "", "Comma-separated regex allow-list for subtitle language codes")
	root.PersistentFlags().Bool("multi-audio", false, "Allow selecting multiple audio tracks for merging")
	root.PersistentFlags().BoolP("verbose", "v", false, "Show full subprocess commands")

	// Also bind run-specific flags on root, so `streampick <url>` works directly.
	bindRunFlags(root.Flags())

	// Subcommands
	root.AddCommand(newPickCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

func bindRunFlags(fs *pflag.FlagSet) {
	fs.Bool("from-file", false, "Treat the argument as a dumped metadata JSON file instead of a URL")
	fs.Bool("check-accessibility", false, "Probe each format URL and drop unreachable ones")
	fs.Bool("audio-only", false, "Audio extraction mode; no merged video candidates")
	fs.StringArray("clip", nil, "Clip range in seconds as START-END (repeatable)")
	fs.Bool("split-chapters", false, "Split the download by chapter")
	fs.String("rename", "", "Rename the output")
	fs.Bool("no-ui", false, "Disable TUI; emit the suggested pick non-interactively")
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	if err := config.Init(root); err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	return root.ExecuteContext(ctx)
}
