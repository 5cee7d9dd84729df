// Package catalog normalizes raw extractor formats into typed pools and
// provides resolution and quality scoring over them.
package catalog

import "streampick/internal/model"

// Catalog partitions an extractor's format list by classification.
// Pools preserve the extractor's original ordering, which later stages use
// as the tie-breaker for stable ranking.
type Catalog struct {
	Combined  []model.Format
	VideoOnly []model.Format
	AudioOnly []model.Format

	// Requested is the extractor's own default pick (suggested selection);
	// empty when the extractor offered none.
	Requested []model.Format
}

// New builds a Catalog from extractor metadata. Formats carrying neither an
// audio nor a video track are dropped here and never seen downstream.
func New(meta model.Metadata) *Catalog {
	c := &Catalog{Requested: meta.RequestedFormats}
	for _, f := range meta.Formats {
		switch f.Classify() {
		case model.ClassCombined:
			c.Combined = append(c.Combined, f)
		case model.ClassVideoOnly:
			c.VideoOnly = append(c.VideoOnly, f)
		case model.ClassAudioOnly:
			c.AudioOnly = append(c.AudioOnly, f)
		}
	}
	return c
}

// HasRequested reports whether the extractor supplied a default pick.
func (c *Catalog) HasRequested() bool {
	return len(c.Requested) > 0
}

// Size returns the total number of formats retained across all pools.
func (c *Catalog) Size() int {
	return len(c.Combined) + len(c.VideoOnly) + len(c.AudioOnly)
}
