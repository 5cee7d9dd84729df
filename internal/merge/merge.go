// Package merge synthesizes selectable video candidates by pairing
// video-only streams with the best audio-only stream, and ranks them
// together with native combined formats.
package merge

import (
	"sort"

	"streampick/internal/catalog"
	"streampick/internal/model"
)

// Candidate is one selectable video option: a native combined format, or a
// video-only format annotated with the chosen audio-only format to mux with.
// A merged candidate is a view over the pair, never a new format; selecting
// it resolves back to both original IDs.
type Candidate struct {
	Format model.Format
	Audio  *model.Format // Non-nil only for merged candidates.
}

// Merged reports whether the candidate is a synthetic video+audio pairing.
func (c Candidate) Merged() bool {
	return c.Audio != nil
}

// FormatIDs resolves the candidate into the ID list handed to the
// downloader: [video, audio] for merged pairs, a single ID otherwise.
func (c Candidate) FormatIDs() []string {
	if c.Audio != nil {
		return []string{c.Format.ID, c.Audio.ID}
	}
	return []string{c.Format.ID}
}

// Score ranks the candidate by its video stream's quality.
func (c Candidate) Score() float64 {
	return catalog.Score(c.Format)
}

// Options controls candidate synthesis.
type Options struct {
	// AudioOnlyMode disables merging entirely; the caller wants audio
	// extraction and no video candidate list is produced.
	AudioOnlyMode bool
}

// BestAudio selects the highest-scoring audio-only format. Ties keep the
// earliest pool entry.
func BestAudio(audioOnly []model.Format) (model.Format, bool) {
	if len(audioOnly) == 0 {
		return model.Format{}, false
	}
	best := audioOnly[0]
	for _, f := range audioOnly[1:] {
		if catalog.Score(f) > catalog.Score(best) {
			best = f
		}
	}
	return best, true
}

// Merge builds the ranked candidate list from the catalog pools. Video-only
// streams are paired with the single best audio-only stream; when the audio
// pool is empty no merged candidates are produced and native combined
// formats are returned alone. The union is deduplicated by format ID with
// the first occurrence winning, then stably sorted by descending score so
// that index 0 is always the highest-quality selectable option.
func Merge(videoOnly, audioOnly, combined []model.Format, opts Options) []Candidate {
	if opts.AudioOnlyMode {
		return nil
	}

	var out []Candidate
	if best, ok := BestAudio(audioOnly); ok {
		for _, v := range videoOnly {
			audio := best
			out = append(out, Candidate{Format: v, Audio: &audio})
		}
	}
	for _, f := range combined {
		out = append(out, Candidate{Format: f})
	}

	// Dedup by ID, first occurrence wins.
	seen := make(map[string]bool, len(out))
	kept := out[:0]
	for _, c := range out {
		if seen[c.Format.ID] {
			continue
		}
		seen[c.Format.ID] = true
		kept = append(kept, c)
	}
	out = kept

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})
	return out
}
