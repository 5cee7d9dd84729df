package model

// CodecNone is the extractor sentinel meaning a stream carries no such track.
const CodecNone = "none"

// Format is a single downloadable stream candidate as reported by the
// extractor. IDs are unique only within one catalog, not globally.
type Format struct {
	ID         string
	Label      string // Free-text description; often the only source of resolution.
	VideoCodec string // CodecNone or empty when absent.
	AudioCodec string // CodecNone or empty when absent.
	Width      int    // 0 if unknown.
	Height     int    // 0 if unknown.

	BitrateKbps         float64
	FileSizeBytes       int64
	FileSizeApproxBytes int64

	URL       string
	Protocol  string
	Extension string
	Note      string // Free text; scanned for DRM indicators.
}

// HasVideo reports whether the format carries a video track.
func (f Format) HasVideo() bool {
	return f.VideoCodec != "" && f.VideoCodec != CodecNone
}

// HasAudio reports whether the format carries an audio track.
func (f Format) HasAudio() bool {
	return f.AudioCodec != "" && f.AudioCodec != CodecNone
}

// Classification partitions formats by which tracks they carry.
type Classification int

const (
	// ClassNone marks a format with neither track; such formats are invalid
	// and dropped at catalog time.
	ClassNone Classification = iota
	ClassCombined
	ClassVideoOnly
	ClassAudioOnly
)

// Classify derives the classification from the format's codecs. It is a pure
// function of the format and is recomputed rather than cached.
func (f Format) Classify() Classification {
	switch {
	case f.HasVideo() && f.HasAudio():
		return ClassCombined
	case f.HasVideo():
		return ClassVideoOnly
	case f.HasAudio():
		return ClassAudioOnly
	default:
		return ClassNone
	}
}

func (c Classification) String() string {
	switch c {
	case ClassCombined:
		return "combined"
	case ClassVideoOnly:
		return "video-only"
	case ClassAudioOnly:
		return "audio-only"
	default:
		return "none"
	}
}
