package model

// SubtitleTrack is one subtitle or caption rendition for a language code.
type SubtitleTrack struct {
	URL       string
	Extension string
	Name      string // Display name, e.g. "English (auto-generated)"; may be empty.
}

// Chapter is a named time range within the source media.
type Chapter struct {
	Title    string
	StartSec float64
	EndSec   float64
}

// Metadata is the extractor response the engine operates on. It is treated as
// an append-only input and never mutated after construction.
type Metadata struct {
	ID          string
	Title       string
	Uploader    string
	DurationSec float64

	Formats []Format
	// RequestedFormats is the extractor's own default pick (the "suggested"
	// selection), empty when the extractor offered none.
	RequestedFormats []Format

	Subtitles         map[string][]SubtitleTrack
	AutomaticCaptions map[string][]SubtitleTrack
	Chapters          []Chapter
}
