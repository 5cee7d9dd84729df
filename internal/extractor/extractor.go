// Package extractor obtains and normalizes video metadata, either by
// invoking a yt-dlp style binary or by parsing its JSON dump directly.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"streampick/internal/model"
	"streampick/internal/util"
)

// Options controls metadata fetching.
type Options struct {
	BinaryPath string // Path to yt-dlp or youtube-dl.
	Verbose    bool
	Runner     util.CmdRunner // Injectable for testing; nil uses os/exec.
}

// Fetch invokes the extractor binary for the given URL and normalizes the
// resulting JSON document.
func Fetch(ctx context.Context, url string, opts Options) (model.Metadata, error) {
	if opts.BinaryPath == "" {
		return model.Metadata{}, errors.New("extractor binary path is required")
	}
	runner := opts.Runner
	if runner == nil {
		runner = util.NewDefaultRunner()
	}

	args := []string{"-J", "--no-playlist", url}
	res, runErr := runner.Run(ctx, util.CmdSpec{
		Path:    opts.BinaryPath,
		Args:    args,
		Verbose: opts.Verbose,
	})
	if runErr != nil && len(res.Stdout) == 0 {
		return model.Metadata{}, fmt.Errorf("metadata fetch failed: %w", runErr)
	}
	meta, err := Parse(strings.NewReader(string(res.Stdout)))
	if err != nil {
		return model.Metadata{}, err
	}
	return meta, nil
}

// ParseFile reads and normalizes a dumped metadata JSON file.
func ParseFile(path string) (model.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("open metadata file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse normalizes a yt-dlp --dump-json document. The extractor sometimes
// emits progress lines before the JSON; when the stream as a whole does not
// decode, the last decodable line wins.
func Parse(r io.Reader) (model.Metadata, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("read metadata: %w", err)
	}

	var info rawInfo
	trimmed := strings.TrimSpace(string(data))
	if uerr := json.Unmarshal([]byte(trimmed), &info); uerr != nil {
		lastErr := uerr
		lines := strings.Split(trimmed, "\n")
		for i := len(lines) - 1; i >= 0; i-- {
			line := strings.TrimSpace(lines[i])
			if line == "" {
				continue
			}
			var tmp rawInfo
			if json.Unmarshal([]byte(line), &tmp) == nil && tmp.ID != "" {
				info = tmp
				lastErr = nil
				break
			}
		}
		if lastErr != nil {
			return model.Metadata{}, fmt.Errorf("parse metadata JSON: %w", lastErr)
		}
	}

	return normalize(info), nil
}

func normalize(info rawInfo) model.Metadata {
	meta := model.Metadata{
		ID:          info.ID,
		Title:       info.Title,
		Uploader:    info.Uploader,
		DurationSec: info.Duration,
	}
	for _, rf := range info.Formats {
		meta.Formats = append(meta.Formats, normalizeFormat(rf))
	}
	for _, rf := range info.RequestedFormats {
		meta.RequestedFormats = append(meta.RequestedFormats, normalizeFormat(rf))
	}
	meta.Subtitles = normalizeTracks(info.Subtitles)
	meta.AutomaticCaptions = normalizeTracks(info.AutomaticCaptions)
	for _, ch := range info.Chapters {
		meta.Chapters = append(meta.Chapters, model.Chapter{
			Title:    ch.Title,
			StartSec: ch.StartTime,
			EndSec:   ch.EndTime,
		})
	}
	return meta
}

func normalizeFormat(rf rawFormat) model.Format {
	return model.Format{
		ID:                  rf.FormatID,
		Label:               rf.Format,
		Note:                rf.FormatNote,
		VideoCodec:          rf.VCodec,
		AudioCodec:          rf.ACodec,
		Width:               rf.Width,
		Height:              rf.Height,
		BitrateKbps:         rf.TBR,
		FileSizeBytes:       rf.Filesize,
		FileSizeApproxBytes: rf.FilesizeApprox,
		URL:                 rf.URL,
		Protocol:            rf.Protocol,
		Extension:           rf.Ext,
	}
}

func normalizeTracks(in map[string][]rawTrack) map[string][]model.SubtitleTrack {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]model.SubtitleTrack, len(in))
	for code, list := range in {
		tracks := make([]model.SubtitleTrack, 0, len(list))
		for _, t := range list {
			tracks = append(tracks, model.SubtitleTrack{URL: t.URL, Extension: t.Ext, Name: t.Name})
		}
		out[code] = tracks
	}
	return out
}
