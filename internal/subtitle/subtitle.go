// Package subtitle filters and orders subtitle/caption tracks by language
// code, search queries, and selection state.
package subtitle

import (
	"regexp"
	"sort"
	"strings"

	"streampick/internal/model"
)

// FilterByLanguage returns the set of language codes whose code fully
// matches at least one regex in the comma-separated allow-list. Matching is
// whole-code, not substring: "en" keeps "en" but not "ja-en". Patterns that
// fail to compile are skipped.
func FilterByLanguage(tracks map[string][]model.SubtitleTrack, allowPatterns string) map[string]bool {
	kept := make(map[string]bool)
	var res []*regexp.Regexp
	for _, raw := range strings.Split(allowPatterns, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		re, err := regexp.Compile("^(?:" + raw + ")$")
		if err != nil {
			continue
		}
		res = append(res, re)
	}
	for code := range tracks {
		for _, re := range res {
			if re.MatchString(code) {
				kept[code] = true
				break
			}
		}
	}
	return kept
}

// Search returns the codes whose code or any track display name contains
// the query, case-insensitively. An empty query matches everything.
func Search(tracks map[string][]model.SubtitleTrack, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []string
	for code, list := range tracks {
		if q == "" || strings.Contains(strings.ToLower(code), q) {
			out = append(out, code)
			continue
		}
		for _, t := range list {
			if strings.Contains(strings.ToLower(t.Name), q) {
				out = append(out, code)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// SortCodes orders codes for display: selected entries first, then within
// each partition lexicographically by the first track's display name when
// present, else by the code itself.
func SortCodes(codes []string, tracks map[string][]model.SubtitleTrack, selected map[string]bool) {
	sort.SliceStable(codes, func(i, j int) bool {
		si, sj := selected[codes[i]], selected[codes[j]]
		if si != sj {
			return si
		}
		return displayKey(codes[i], tracks) < displayKey(codes[j], tracks)
	})
}

// Mismatch compares the finally selected codes against what the persisted
// language-preference patterns would have selected, and surfaces the
// symmetric difference so a caller can prompt the user to update their
// stored preference. No persistence happens here.
func Mismatch(tracks map[string][]model.SubtitleTrack, selected []string, preferencePatterns string) ([]string, bool) {
	preferred := FilterByLanguage(tracks, preferencePatterns)
	chosen := make(map[string]bool, len(selected))
	for _, c := range selected {
		chosen[c] = true
	}

	var diff []string
	for c := range chosen {
		if !preferred[c] {
			diff = append(diff, c)
		}
	}
	for c := range preferred {
		if !chosen[c] {
			diff = append(diff, c)
		}
	}
	sort.Strings(diff)
	return diff, len(diff) > 0
}

func displayKey(code string, tracks map[string][]model.SubtitleTrack) string {
	if list := tracks[code]; len(list) > 0 && list[0].Name != "" {
		return list[0].Name
	}
	return code
}
