package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"streampick/internal/config"
	"streampick/internal/model"
	"streampick/internal/pipeline"
	"streampick/internal/selection"
	"streampick/internal/subtitle"
	"streampick/internal/ui"
	"streampick/internal/util/deps"
	"streampick/internal/validate"
)

type runMode struct {
	ForceTUI bool
}

type ctxKey string

const runInputsKey ctxKey = "runInputs"

type runInputs struct {
	Source        ui.Source
	Settings      config.Settings
	Resolve       pipeline.ResolveOptions
	Clips         []model.ClipRange
	SplitChapters bool
	Rename        string
	NoUI          bool
}

func runPreRun(cmd *cobra.Command, args []string) error {
	in, err := assembleRunInputs(cmd, args)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	ctx := context.WithValue(cmd.Context(), runInputsKey, in)
	cmd.SetContext(ctx)
	return nil
}

func assembleRunInputs(cmd *cobra.Command, args []string) (runInputs, error) {
	settings := config.Load()

	fromFile, _ := cmd.Flags().GetBool("from-file")
	checkAccess, _ := cmd.Flags().GetBool("check-accessibility")
	audioOnly, _ := cmd.Flags().GetBool("audio-only")
	clipSpecs, _ := cmd.Flags().GetStringArray("clip")
	splitChapters, _ := cmd.Flags().GetBool("split-chapters")
	rename, _ := cmd.Flags().GetString("rename")
	noUI, _ := cmd.Flags().GetBool("no-ui")
	verbose, _ := cmd.Flags().GetBool("verbose")

	var clips []model.ClipRange
	for _, spec := range clipSpecs {
		c, err := parseClip(spec)
		if err != nil {
			return runInputs{}, err
		}
		clips = append(clips, c)
	}

	source := ui.Source{URL: args[0]}
	if fromFile {
		source = ui.Source{File: args[0]}
		if _, err := os.Stat(source.File); err != nil {
			return runInputs{}, fmt.Errorf("metadata file %q: %w", source.File, err)
		}
	}

	return runInputs{
		Source:   source,
		Settings: settings,
		Resolve: pipeline.ResolveOptions{
			CheckAccessibility: checkAccess,
			AudioOnlyMode:      audioOnly,
			MultiAudio:         settings.MergeMultiAudio,
			Verbose:            verbose,
		},
		Clips:         clips,
		SplitChapters: splitChapters,
		Rename:        rename,
		NoUI:          noUI,
	}, nil
}

// parseClip parses "START-END" in seconds, e.g. "12.5-40".
func parseClip(spec string) (model.ClipRange, error) {
	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return model.ClipRange{}, fmt.Errorf("invalid --clip %q (expected START-END in seconds)", spec)
	}
	start, serr := strconv.ParseFloat(strings.TrimSpace(startStr), 64)
	end, eerr := strconv.ParseFloat(strings.TrimSpace(endStr), 64)
	if serr != nil || eerr != nil {
		return model.ClipRange{}, fmt.Errorf("invalid --clip %q (expected START-END in seconds)", spec)
	}
	if start < 0 || end < start {
		return model.ClipRange{}, fmt.Errorf("invalid --clip %q: start must be >= 0 and <= end", spec)
	}
	return model.ClipRange{StartSec: start, EndSec: end}, nil
}

func runExecute(cmd *cobra.Command, args []string, mode runMode) error {
	var in runInputs
	if v := cmd.Context().Value(runInputsKey); v != nil {
		in = v.(runInputs)
	} else {
		assembled, err := assembleRunInputs(cmd, args)
		if err != nil {
			return &ExitError{Code: ExitCLIError, Err: err}
		}
		in = assembled
	}

	svcOpts, err := serviceOptions(in)
	if err != nil {
		return err
	}

	useTUI := mode.ForceTUI || (!in.NoUI && isTerminal())
	if useTUI {
		cfg, mismatch, uerr := ui.Run(cmd.Context(), in.Source, in.Settings.SubtitleLanguages, svcOpts...)
		if uerr != nil {
			if errors.Is(uerr, ui.ErrCancelled) {
				return &ExitError{Code: ExitSelectionError, Err: uerr}
			}
			return &ExitError{Code: ExitExtractorError, Err: uerr}
		}
		applyRunFlags(&cfg, in)
		if len(mismatch) > 0 {
			fmt.Fprintf(os.Stderr, "note: subtitle languages %s differ from your configured preference; update subtitle_languages to persist\n",
				strings.Join(mismatch, ", "))
		}
		return emitConfig(cmd, cfg)
	}

	return runHeadless(cmd.Context(), cmd, in, svcOpts)
}

// runHeadless resolves the source and emits the suggested pick without
// interaction.
func runHeadless(ctx context.Context, cmd *cobra.Command, in runInputs, svcOpts []pipeline.Option) error {
	session, err := resolveSession(ctx, in, svcOpts)
	if err != nil {
		return err
	}

	st := session.NewSelection()
	if st.Empty() {
		st.SelectSuggested()
	}

	var b selection.Builder
	for _, c := range in.Clips {
		if err := b.AddClipRange(c.StartSec, c.EndSec); err != nil {
			return &ExitError{Code: ExitCLIError, Err: err}
		}
	}
	b.SetSplitByChapter(in.SplitChapters)
	b.SetRename(in.Rename)
	b.SetSubtitleCodes(allowedCodes(session.Meta.Subtitles, in.Settings.SubtitleLanguages))
	b.SetAutoCaptionCodes(allowedCodes(session.Meta.AutomaticCaptions, in.Settings.SubtitleLanguages))

	cfg, berr := b.Build(st)
	if berr != nil {
		return &ExitError{Code: ExitSelectionError, Err: berr}
	}
	return emitConfig(cmd, cfg)
}

func resolveSession(ctx context.Context, in runInputs, svcOpts []pipeline.Option) (*pipeline.Session, error) {
	svc := pipeline.NewService(svcOpts...)
	var (
		session *pipeline.Session
		err     error
	)
	if in.Source.File != "" {
		session, err = svc.ResolveFile(ctx, in.Source.File)
	} else {
		session, err = svc.ResolveURL(ctx, in.Source.URL)
	}
	if err != nil {
		return nil, &ExitError{Code: ExitExtractorError, Err: err}
	}
	return session, nil
}

// serviceOptions translates inputs into pipeline options, locating the
// extractor binary when the source is a URL.
func serviceOptions(in runInputs) ([]pipeline.Option, error) {
	validator := validate.New(
		validate.WithBlocklists(validate.Blocklists{
			VideoCodecPrefixes: in.Settings.VideoCodecBlocklist,
			AudioCodecPrefixes: in.Settings.AudioCodecBlocklist,
		}),
		validate.WithProber(validate.NewHTTPProber(in.Settings.ProxyURL)),
		validate.WithProbeTimeout(in.Settings.ProbeTimeout),
		validate.WithProbeConcurrency(in.Settings.ProbeConcurrency),
	)

	opts := []pipeline.Option{
		pipeline.WithValidator(validator),
		pipeline.WithResolveOptions(in.Resolve),
	}
	if in.Source.File == "" {
		path, err := deps.FindExtractor(in.Settings.ExtractorBinary)
		if err != nil {
			return nil, &ExitError{Code: ExitMissingDep, Err: err}
		}
		opts = append(opts, pipeline.WithExtractorPath(path))
	}
	return opts, nil
}

// applyRunFlags folds CLI-supplied clip/chapter/rename inputs into a config
// built interactively (the TUI covers format and subtitle picks only).
func applyRunFlags(cfg *model.DownloadConfig, in runInputs) {
	if len(in.Clips) > 0 {
		cfg.ClipRanges = in.Clips
	}
	if in.SplitChapters {
		cfg.SplitByChapter = true
	}
	if in.Rename != "" {
		cfg.RenameTo = in.Rename
	}
}

func allowedCodes(tracks map[string][]model.SubtitleTrack, patterns string) []string {
	if len(tracks) == 0 || patterns == "" {
		return nil
	}
	kept := subtitle.FilterByLanguage(tracks, patterns)
	codes := subtitle.Search(tracks, "")
	var out []string
	for _, c := range codes {
		if kept[c] {
			out = append(out, c)
		}
	}
	return out
}

func emitConfig(cmd *cobra.Command, cfg model.DownloadConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
