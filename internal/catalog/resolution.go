package catalog

import (
	"math"
	"regexp"
	"strconv"

	"streampick/internal/model"
)

var (
	dimensionsRe = regexp.MustCompile(`(\d{3,4})x(\d{3,4})`)
	heightRe     = regexp.MustCompile(`(\d{3,4})p`)
)

// Resolve estimates the (width, height) of a format. Explicit fields win;
// otherwise the free-text label is scanned for "1920x1080" style dimensions,
// then for a "1080p" style height, from which the width is derived assuming
// 16:9 (an approximation; non-16:9 sources get a wrong width).
// Pure, never errors: malformed numbers are treated as absent.
func Resolve(f model.Format) (width, height int, ok bool) {
	if f.Width > 0 && f.Height > 0 {
		return f.Width, f.Height, true
	}
	if m := dimensionsRe.FindStringSubmatch(f.Label); m != nil {
		w, werr := strconv.Atoi(m[1])
		h, herr := strconv.Atoi(m[2])
		if werr == nil && herr == nil && w > 0 && h > 0 {
			return w, h, true
		}
	}
	if m := heightRe.FindStringSubmatch(f.Label); m != nil {
		h, err := strconv.Atoi(m[1])
		if err == nil && h > 0 {
			return int(math.Round(float64(h) * 16.0 / 9.0)), h, true
		}
	}
	return 0, 0, false
}
