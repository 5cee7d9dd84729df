package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"streampick/internal/model"
	"streampick/internal/pipeline"
	"streampick/internal/subtitle"
)

// ErrCancelled is returned when the user quits without building a config.
var ErrCancelled = errors.New("selection cancelled")

// Run launches the interactive picker for the given source. The pipeline
// service is constructed here so its progress events feed the TUI. On a
// completed flow it returns the built DownloadConfig plus the set of
// subtitle codes differing from the persisted language preference, so the
// caller can offer to update the stored preference.
func Run(ctx context.Context, source Source, subtitlePrefs string, svcOpts ...pipeline.Option) (model.DownloadConfig, []string, error) {
	eventCh := make(chan tea.Msg, 64)
	svcOpts = append(svcOpts, pipeline.WithReporter(teaReporter{ch: eventCh}))
	svc := pipeline.NewService(svcOpts...)

	m := NewModel(ctx, svc, source, subtitlePrefs, eventCh)
	prog := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return model.DownloadConfig{}, nil, err
	}

	fm, ok := final.(Model)
	if !ok {
		return model.DownloadConfig{}, nil, ErrCancelled
	}
	if fm.err != nil {
		return model.DownloadConfig{}, nil, fm.err
	}
	if !fm.built || fm.config == nil {
		return model.DownloadConfig{}, nil, ErrCancelled
	}

	var mismatch []string
	if fm.session != nil && len(fm.session.Meta.Subtitles) > 0 {
		mismatch, _ = subtitle.Mismatch(fm.session.Meta.Subtitles, fm.config.SubtitleCodes, subtitlePrefs)
	}
	return *fm.config, mismatch, nil
}
