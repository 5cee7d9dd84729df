package selection

import (
	"errors"
	"reflect"
	"testing"

	"streampick/internal/merge"
	"streampick/internal/model"
)

func TestBuilderClipValidation(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		end     float64
		wantErr bool
	}{
		{name: "valid range", start: 10, end: 20},
		{name: "zero-length range", start: 5, end: 5},
		{name: "range from zero", start: 0, end: 30},
		{name: "negative start", start: -1, end: 20, wantErr: true},
		{name: "end before start", start: 20, end: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Builder
			err := b.AddClipRange(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("AddClipRange(%v, %v) error = %v, wantErr %v", tt.start, tt.end, err, tt.wantErr)
			}
		})
	}
}

func TestBuilderRejectedClipNotRecorded(t *testing.T) {
	var b Builder
	if err := b.AddClipRange(30, 10); err == nil {
		t.Fatal("AddClipRange(30, 10) succeeded, want error")
	}
	if err := b.AddClipRange(0, 10); err != nil {
		t.Fatalf("AddClipRange(0, 10) error = %v", err)
	}

	st := New([]merge.Candidate{{Format: model.Format{ID: "c1", VideoCodec: "avc1", AudioCodec: "mp4a"}}}, nil, nil, nil, false)
	st.SelectCombined(0)
	cfg, err := b.Build(st)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := []model.ClipRange{{StartSec: 0, EndSec: 10}}
	if !reflect.DeepEqual(cfg.ClipRanges, want) {
		t.Errorf("ClipRanges = %v, want %v", cfg.ClipRanges, want)
	}
}

func TestBuildFullConfig(t *testing.T) {
	bestAudio := model.Format{ID: "a1", AudioCodec: "opus"}
	st := New(
		[]merge.Candidate{{Format: model.Format{ID: "v1", VideoCodec: "vp9"}, Audio: &bestAudio}},
		nil, nil, nil, false,
	)
	st.SelectCombined(0)

	var b Builder
	if err := b.AddClipRange(5, 60); err != nil {
		t.Fatalf("AddClipRange() error = %v", err)
	}
	b.SetSplitByChapter(true)
	b.SetRename("lecture-01")
	b.SetSubtitleCodes([]string{"en", "de"})
	b.SetAutoCaptionCodes([]string{"ja"})

	cfg, err := b.Build(st)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := model.DownloadConfig{
		FormatIDs:        []string{"v1", "a1"},
		ClipRanges:       []model.ClipRange{{StartSec: 5, EndSec: 60}},
		SplitByChapter:   true,
		RenameTo:         "lecture-01",
		SubtitleCodes:    []string{"en", "de"},
		AutoCaptionCodes: []string{"ja"},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Build() = %+v, want %+v", cfg, want)
	}
}

func TestBuildEmptySelection(t *testing.T) {
	st := New(nil, nil, nil, nil, false)
	var b Builder
	_, err := b.Build(st)
	if !errors.Is(err, ErrNoFormats) {
		t.Errorf("Build() error = %v, want ErrNoFormats", err)
	}
}
