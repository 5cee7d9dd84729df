package subtitle

import (
	"reflect"
	"testing"

	"streampick/internal/model"
)

func tracksFor(codes ...string) map[string][]model.SubtitleTrack {
	m := make(map[string][]model.SubtitleTrack, len(codes))
	for _, c := range codes {
		m[c] = []model.SubtitleTrack{{URL: "https://x/" + c, Extension: "vtt"}}
	}
	return m
}

func TestFilterByLanguage(t *testing.T) {
	tests := []struct {
		name     string
		tracks   map[string][]model.SubtitleTrack
		patterns string
		want     []string
	}{
		{
			name:     "whole code match only",
			tracks:   tracksFor("en", "ja-en", "en-US"),
			patterns: "en",
			want:     []string{"en"},
		},
		{
			name:     "regex alternation",
			tracks:   tracksFor("en", "de", "fr", "ja"),
			patterns: "en|de",
			want:     []string{"de", "en"},
		},
		{
			name:     "comma separated list",
			tracks:   tracksFor("en", "de", "fr"),
			patterns: "en, fr",
			want:     []string{"en", "fr"},
		},
		{
			name:     "prefix wildcard",
			tracks:   tracksFor("en", "en-US", "en-GB", "ja"),
			patterns: "en.*",
			want:     []string{"en", "en-GB", "en-US"},
		},
		{
			name:     "invalid pattern skipped",
			tracks:   tracksFor("en", "de"),
			patterns: "[invalid, de",
			want:     []string{"de"},
		},
		{
			name:     "empty pattern list",
			tracks:   tracksFor("en"),
			patterns: "",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept := FilterByLanguage(tt.tracks, tt.patterns)
			var got []string
			for _, c := range tt.want {
				if kept[c] {
					got = append(got, c)
				}
			}
			if len(kept) != len(tt.want) {
				t.Fatalf("kept %d codes (%v), want %d", len(kept), kept, len(tt.want))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("kept = %v, want %v", kept, tt.want)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	tracks := map[string][]model.SubtitleTrack{
		"en": {{Name: "English"}},
		"de": {{Name: "German"}},
		"ja": {{Name: "Japanese"}},
		"pt": {{Name: "Portuguese"}},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query matches all sorted", query: "", want: []string{"de", "en", "ja", "pt"}},
		{name: "match by code", query: "ja", want: []string{"ja"}},
		{name: "match by display name", query: "german", want: []string{"de"}},
		{name: "case insensitive", query: "ENGLISH", want: []string{"en"}},
		{name: "substring across both", query: "e", want: []string{"de", "en", "ja", "pt"}},
		{name: "no match", query: "zz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(tracks, tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSortCodes(t *testing.T) {
	tracks := map[string][]model.SubtitleTrack{
		"en": {{Name: "English"}},
		"de": {{Name: "German"}},
		"ja": {{Name: "Japanese"}},
		"xx": {}, // no display name, sorts by code
	}

	codes := []string{"xx", "ja", "en", "de"}
	selected := map[string]bool{"ja": true, "de": true}
	SortCodes(codes, tracks, selected)

	// Selected first (German < Japanese), then unselected (English < xx).
	want := []string{"de", "ja", "en", "xx"}
	if !reflect.DeepEqual(codes, want) {
		t.Errorf("SortCodes() = %v, want %v", codes, want)
	}
}

func TestMismatch(t *testing.T) {
	tracks := tracksFor("en", "de", "fr")

	tests := []struct {
		name     string
		selected []string
		patterns string
		wantDiff []string
		wantAny  bool
	}{
		{
			name:     "selection matches preference",
			selected: []string{"en"},
			patterns: "en",
			wantDiff: nil,
		},
		{
			name:     "extra selection surfaces",
			selected: []string{"en", "de"},
			patterns: "en",
			wantDiff: []string{"de"},
			wantAny:  true,
		},
		{
			name:     "dropped preference surfaces",
			selected: []string{"en"},
			patterns: "en|fr",
			wantDiff: []string{"fr"},
			wantAny:  true,
		},
		{
			name:     "both directions sorted",
			selected: []string{"de"},
			patterns: "fr",
			wantDiff: []string{"de", "fr"},
			wantAny:  true,
		},
		{
			name:     "nothing selected no preference",
			selected: nil,
			patterns: "",
			wantDiff: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff, any := Mismatch(tracks, tt.selected, tt.patterns)
			if any != tt.wantAny {
				t.Errorf("Mismatch() changed = %v, want %v", any, tt.wantAny)
			}
			if !reflect.DeepEqual(diff, tt.wantDiff) {
				t.Errorf("Mismatch() diff = %v, want %v", diff, tt.wantDiff)
			}
		})
	}
}
