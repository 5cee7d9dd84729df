package catalog

import "streampick/internal/model"

// Score computes a comparable quality rank for a format; higher is better.
// When the resolution resolves, the score is the pixel area, which is a more
// reliable quality proxy than file size. Otherwise it falls back to the
// approximate then exact file size, the only remaining signal for formats
// such as audio-only streams. Scores are only meaningful within one
// classification; callers must not compare across classifications.
func Score(f model.Format) float64 {
	if w, h, ok := Resolve(f); ok {
		return float64(w) * float64(h)
	}
	if f.FileSizeApproxBytes > 0 {
		return float64(f.FileSizeApproxBytes)
	}
	if f.FileSizeBytes > 0 {
		return float64(f.FileSizeBytes)
	}
	return 0
}
