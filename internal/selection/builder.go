package selection

import (
	"errors"
	"fmt"

	"streampick/internal/model"
)

// ErrNoFormats is returned when Build is asked for a config while no pick
// of any kind is active.
var ErrNoFormats = errors.New("no formats selected")

// Builder assembles the final immutable DownloadConfig from a resolved
// selection plus the externally supplied clip/chapter/rename/subtitle
// inputs. Only structural validation happens here; whether the chosen
// formats are still valid or live is the caller's responsibility.
type Builder struct {
	clips            []model.ClipRange
	splitByChapter   bool
	renameTo         string
	subtitleCodes    []string
	autoCaptionCodes []string
}

// AddClipRange appends a clip range after structural validation.
func (b *Builder) AddClipRange(startSec, endSec float64) error {
	if startSec < 0 {
		return fmt.Errorf("clip start %.2f is negative", startSec)
	}
	if endSec < startSec {
		return fmt.Errorf("clip range %.2f-%.2f: end precedes start", startSec, endSec)
	}
	b.clips = append(b.clips, model.ClipRange{StartSec: startSec, EndSec: endSec})
	return nil
}

// SetSplitByChapter sets the chapter-split flag.
func (b *Builder) SetSplitByChapter(v bool) { b.splitByChapter = v }

// SetRename sets the output rename target; empty keeps the original name.
func (b *Builder) SetRename(name string) { b.renameTo = name }

// SetSubtitleCodes sets the chosen subtitle language codes.
func (b *Builder) SetSubtitleCodes(codes []string) { b.subtitleCodes = codes }

// SetAutoCaptionCodes sets the chosen automatic-caption language codes.
func (b *Builder) SetAutoCaptionCodes(codes []string) { b.autoCaptionCodes = codes }

// Build resolves the selection state into a DownloadConfig.
func (b *Builder) Build(st *State) (model.DownloadConfig, error) {
	ids := st.ResolvedIDs()
	if len(ids) == 0 {
		return model.DownloadConfig{}, ErrNoFormats
	}
	return model.DownloadConfig{
		FormatIDs:        ids,
		ClipRanges:       b.clips,
		SplitByChapter:   b.splitByChapter,
		RenameTo:         b.renameTo,
		SubtitleCodes:    b.subtitleCodes,
		AutoCaptionCodes: b.autoCaptionCodes,
	}, nil
}
