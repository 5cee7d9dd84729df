// Package selection tracks which formats a user has picked across the
// suggested, combined, video-only, and audio-only pools, enforcing the
// mutual-exclusion rules between them, and resolves the final format-ID
// list for the download configuration.
package selection

import (
	"sort"

	"streampick/internal/merge"
	"streampick/internal/model"
)

const noIndex = -1

// State is the per-flow selection state machine. It has exactly one logical
// owner; selection events arrive as discrete method calls, and malformed
// events (out-of-range indices) are ignored rather than rejected with
// errors, since the UI they come from may race with list changes.
type State struct {
	candidates []merge.Candidate
	videoOnly  []model.Format
	audioOnly  []model.Format
	requested  []model.Format

	// multiAudio permits more than one audio-only pick (track merging).
	multiAudio bool

	suggested      bool
	combinedIndex  int
	videoOnlyIndex int
	audioPicks     map[int]bool
}

// New creates a State over the ranked candidate list and raw pools. The
// initial state is Suggested when the extractor supplied requested formats,
// Empty otherwise.
func New(candidates []merge.Candidate, videoOnly, audioOnly, requested []model.Format, multiAudio bool) *State {
	return &State{
		candidates:     candidates,
		videoOnly:      videoOnly,
		audioOnly:      audioOnly,
		requested:      requested,
		multiAudio:     multiAudio,
		suggested:      len(requested) > 0,
		combinedIndex:  noIndex,
		videoOnlyIndex: noIndex,
		audioPicks:     make(map[int]bool),
	}
}

// SelectSuggested toggles the suggested (extractor default) pick. Turning it
// on clears every manual pick.
func (s *State) SelectSuggested() {
	if s.suggested {
		s.suggested = false
		return
	}
	s.suggested = true
	s.combinedIndex = noIndex
	s.videoOnlyIndex = noIndex
	s.audioPicks = make(map[int]bool)
}

// SelectCombined picks a ranked combined/merged candidate. Re-picking the
// current index toggles it off. A combined pick excludes any video-only
// pick, and when audio multi-select is disabled it also clears audio picks,
// since a merged candidate already carries its own audio.
func (s *State) SelectCombined(i int) {
	if i < 0 || i >= len(s.candidates) {
		return
	}
	if s.combinedIndex == i {
		s.combinedIndex = noIndex
		return
	}
	s.combinedIndex = i
	s.videoOnlyIndex = noIndex
	s.suggested = false
	if !s.multiAudio {
		s.audioPicks = make(map[int]bool)
	}
}

// SelectVideoOnly picks a raw video-only format, excluding any combined
// pick. Re-picking the current index toggles it off.
func (s *State) SelectVideoOnly(i int) {
	if i < 0 || i >= len(s.videoOnly) {
		return
	}
	if s.videoOnlyIndex == i {
		s.videoOnlyIndex = noIndex
		return
	}
	s.videoOnlyIndex = i
	s.combinedIndex = noIndex
	s.suggested = false
}

// ToggleAudioOnly picks or unpicks an audio-only format. With multi-select
// disabled a new pick replaces the previous one; with it enabled membership
// toggles. Either way the suggested pick is cleared.
func (s *State) ToggleAudioOnly(i int) {
	if i < 0 || i >= len(s.audioOnly) {
		return
	}
	if s.audioPicks[i] {
		delete(s.audioPicks, i)
		s.suggested = false
		return
	}
	if !s.multiAudio {
		s.audioPicks = make(map[int]bool)
	}
	s.audioPicks[i] = true
	s.suggested = false
}

// SuggestedSelected reports whether the suggested pick drives the config.
func (s *State) SuggestedSelected() bool { return s.suggested }

// CombinedIndex returns the current combined pick, if any.
func (s *State) CombinedIndex() (int, bool) {
	return s.combinedIndex, s.combinedIndex != noIndex
}

// VideoOnlyIndex returns the current video-only pick, if any.
func (s *State) VideoOnlyIndex() (int, bool) {
	return s.videoOnlyIndex, s.videoOnlyIndex != noIndex
}

// AudioOnlySelected reports whether the given audio-only index is picked.
func (s *State) AudioOnlySelected(i int) bool { return s.audioPicks[i] }

// Empty reports whether no pick of any kind is active.
func (s *State) Empty() bool {
	return !s.suggested && s.combinedIndex == noIndex &&
		s.videoOnlyIndex == noIndex && len(s.audioPicks) == 0
}

// ResolvedIDs derives the ordered format-ID list from the current state.
//
// The suggested pick resolves to the extractor's requested formats unless
// the highest-ranked candidate is itself a synthetic merge, in which case it
// expands to that pair. Merged combined picks expand to [video, audio];
// native combined picks to one ID. Audio picks contribute in index order,
// ahead of any concurrently active video pick. An empty state yields nil.
func (s *State) ResolvedIDs() []string {
	if s.suggested {
		return s.resolveSuggested()
	}

	var ids []string
	for _, i := range s.sortedAudioPicks() {
		ids = append(ids, s.audioOnly[i].ID)
	}
	if s.combinedIndex != noIndex {
		ids = append(ids, s.candidates[s.combinedIndex].FormatIDs()...)
	} else if s.videoOnlyIndex != noIndex {
		ids = append(ids, s.videoOnly[s.videoOnlyIndex].ID)
	}
	return ids
}

func (s *State) resolveSuggested() []string {
	if len(s.candidates) > 0 && s.candidates[0].Merged() {
		return s.candidates[0].FormatIDs()
	}
	if len(s.requested) > 0 {
		ids := make([]string, 0, len(s.requested))
		for _, f := range s.requested {
			ids = append(ids, f.ID)
		}
		return ids
	}
	if len(s.candidates) > 0 {
		return s.candidates[0].FormatIDs()
	}
	return nil
}

func (s *State) sortedAudioPicks() []int {
	out := make([]int, 0, len(s.audioPicks))
	for i := range s.audioPicks {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
