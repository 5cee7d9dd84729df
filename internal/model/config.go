package model

// ClipRange is one start/end pair (seconds) to cut from the source.
type ClipRange struct {
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
}

// DownloadConfig is the terminal, immutable output of a selection flow,
// handed to the external download/transcode engine.
type DownloadConfig struct {
	FormatIDs        []string    `json:"format_ids"`
	ClipRanges       []ClipRange `json:"clip_ranges,omitempty"`
	SplitByChapter   bool        `json:"split_by_chapter,omitempty"`
	RenameTo         string      `json:"rename_to,omitempty"`
	SubtitleCodes    []string    `json:"subtitle_codes,omitempty"`
	AutoCaptionCodes []string    `json:"auto_caption_codes,omitempty"`
}
