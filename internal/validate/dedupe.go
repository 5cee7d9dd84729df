package validate

import (
	"fmt"

	"streampick/internal/catalog"
	"streampick/internal/model"
)

// DeduplicateByResolution collapses formats sharing a resolution key down to
// the single best entry per key, preserving input order. Formats whose
// resolution cannot be determined carry no key and are kept as-is.
//
// "Best" here deliberately differs from display ranking: deduplication
// prefers complete audio+video streams over partial ones, so it uses a
// weighted sum of bitrate, file size, and pixel area plus a flat bonus for
// formats carrying both tracks.
func DeduplicateByResolution(formats []model.Format) []model.Format {
	type slot struct {
		index int
		score float64
	}
	best := make(map[string]slot)
	for i, f := range formats {
		key, ok := resolutionKey(f)
		if !ok {
			continue
		}
		s := selectScore(f)
		if cur, seen := best[key]; !seen || s > cur.score {
			best[key] = slot{index: i, score: s}
		}
	}

	keep := make(map[int]bool, len(best))
	for _, sl := range best {
		keep[sl.index] = true
	}

	var out []model.Format
	for i, f := range formats {
		if _, ok := resolutionKey(f); !ok {
			out = append(out, f)
			continue
		}
		if keep[i] {
			out = append(out, f)
		}
	}
	return out
}

func resolutionKey(f model.Format) (string, bool) {
	w, h, ok := catalog.Resolve(f)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%dx%d", w, h), true
}

// selectScore ranks formats within one resolution bucket.
func selectScore(f model.Format) float64 {
	score := f.BitrateKbps * 1000
	size := f.FileSizeBytes
	if size == 0 {
		size = f.FileSizeApproxBytes
	}
	score += float64(size) / 1000
	if w, h, ok := catalog.Resolve(f); ok {
		score += float64(w) * float64(h) / 1000
	}
	if f.HasVideo() && f.HasAudio() {
		score += 1000
	}
	return score
}
