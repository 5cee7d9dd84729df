package selection

import (
	"reflect"
	"testing"

	"streampick/internal/merge"
	"streampick/internal/model"
)

func testState(multiAudio bool) *State {
	bestAudio := model.Format{ID: "a256", AudioCodec: "opus"}
	candidates := []merge.Candidate{
		{Format: model.Format{ID: "v2160", VideoCodec: "vp9", Width: 3840, Height: 2160}, Audio: &bestAudio},
		{Format: model.Format{ID: "v1080", VideoCodec: "vp9", Width: 1920, Height: 1080}, Audio: &bestAudio},
		{Format: model.Format{ID: "c480", VideoCodec: "avc1", AudioCodec: "mp4a", Width: 854, Height: 480}},
	}
	videoOnly := []model.Format{
		{ID: "v2160", VideoCodec: "vp9"},
		{ID: "v1080", VideoCodec: "vp9"},
	}
	audioOnly := []model.Format{
		{ID: "a128", AudioCodec: "opus"},
		{ID: "a256", AudioCodec: "opus"},
	}
	requested := []model.Format{
		{ID: "v1080", VideoCodec: "vp9"},
		{ID: "a128", AudioCodec: "opus"},
	}
	return New(candidates, videoOnly, audioOnly, requested, multiAudio)
}

func TestNewStartsSuggestedWhenRequested(t *testing.T) {
	st := testState(false)
	if !st.SuggestedSelected() {
		t.Error("SuggestedSelected() = false, want true with requested formats")
	}

	empty := New(nil, nil, nil, nil, false)
	if empty.SuggestedSelected() {
		t.Error("SuggestedSelected() = true, want false without requested formats")
	}
	if !empty.Empty() {
		t.Error("Empty() = false, want true for fresh state")
	}
}

func TestMutualExclusion(t *testing.T) {
	st := testState(false)

	st.SelectCombined(1)
	if st.SuggestedSelected() {
		t.Error("combined pick did not clear suggested")
	}
	if idx, ok := st.CombinedIndex(); !ok || idx != 1 {
		t.Fatalf("CombinedIndex() = (%d, %v), want (1, true)", idx, ok)
	}

	st.SelectVideoOnly(0)
	if _, ok := st.CombinedIndex(); ok {
		t.Error("video-only pick did not clear combined")
	}
	if idx, ok := st.VideoOnlyIndex(); !ok || idx != 0 {
		t.Fatalf("VideoOnlyIndex() = (%d, %v), want (0, true)", idx, ok)
	}

	st.SelectCombined(2)
	if _, ok := st.VideoOnlyIndex(); ok {
		t.Error("combined pick did not clear video-only")
	}

	st.SelectSuggested()
	if _, ok := st.CombinedIndex(); ok {
		t.Error("suggested pick did not clear combined")
	}
	if !st.SuggestedSelected() {
		t.Error("SelectSuggested() did not enable suggested")
	}
}

func TestTogglesOffOnRepick(t *testing.T) {
	st := testState(false)

	st.SelectCombined(1)
	st.SelectCombined(1)
	if _, ok := st.CombinedIndex(); ok {
		t.Error("re-picking combined did not toggle off")
	}

	st.SelectVideoOnly(0)
	st.SelectVideoOnly(0)
	if _, ok := st.VideoOnlyIndex(); ok {
		t.Error("re-picking video-only did not toggle off")
	}

	st.ToggleAudioOnly(1)
	st.ToggleAudioOnly(1)
	if st.AudioOnlySelected(1) {
		t.Error("re-picking audio did not toggle off")
	}
	if !st.Empty() {
		t.Error("Empty() = false after everything toggled off")
	}
}

func TestOutOfRangeIsNoOp(t *testing.T) {
	st := testState(false)
	before := st.ResolvedIDs()

	st.SelectCombined(-1)
	st.SelectCombined(99)
	st.SelectVideoOnly(-1)
	st.SelectVideoOnly(99)
	st.ToggleAudioOnly(-1)
	st.ToggleAudioOnly(99)

	after := st.ResolvedIDs()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("out-of-range events changed state: %v -> %v", before, after)
	}
	if !st.SuggestedSelected() {
		t.Error("out-of-range events cleared suggested")
	}
}

func TestAudioSelection(t *testing.T) {
	t.Run("single mode replaces", func(t *testing.T) {
		st := testState(false)
		st.ToggleAudioOnly(0)
		st.ToggleAudioOnly(1)
		if st.AudioOnlySelected(0) {
			t.Error("single-audio mode kept the previous pick")
		}
		if !st.AudioOnlySelected(1) {
			t.Error("new audio pick not active")
		}
	})

	t.Run("multi mode accumulates", func(t *testing.T) {
		st := testState(true)
		st.ToggleAudioOnly(0)
		st.ToggleAudioOnly(1)
		if !st.AudioOnlySelected(0) || !st.AudioOnlySelected(1) {
			t.Error("multi-audio mode did not keep both picks")
		}
	})

	t.Run("combined pick clears audio in single mode", func(t *testing.T) {
		st := testState(false)
		st.ToggleAudioOnly(0)
		st.SelectCombined(0)
		if st.AudioOnlySelected(0) {
			t.Error("combined pick kept the audio pick in single mode")
		}
	})

	t.Run("combined pick keeps audio in multi mode", func(t *testing.T) {
		st := testState(true)
		st.ToggleAudioOnly(0)
		st.SelectCombined(0)
		if !st.AudioOnlySelected(0) {
			t.Error("combined pick dropped the audio pick in multi mode")
		}
	})
}

func TestResolvedIDs(t *testing.T) {
	t.Run("suggested expands head merge", func(t *testing.T) {
		// The top-ranked candidate is synthetic, so suggested resolves to
		// its video+audio pair rather than the extractor's request.
		st := testState(false)
		want := []string{"v2160", "a256"}
		if got := st.ResolvedIDs(); !reflect.DeepEqual(got, want) {
			t.Errorf("ResolvedIDs() = %v, want %v", got, want)
		}
	})

	t.Run("suggested falls back to requested", func(t *testing.T) {
		candidates := []merge.Candidate{
			{Format: model.Format{ID: "c480", VideoCodec: "avc1", AudioCodec: "mp4a"}},
		}
		requested := []model.Format{{ID: "c480"}}
		st := New(candidates, nil, nil, requested, false)
		want := []string{"c480"}
		if got := st.ResolvedIDs(); !reflect.DeepEqual(got, want) {
			t.Errorf("ResolvedIDs() = %v, want %v", got, want)
		}
	})

	t.Run("merged combined pick expands", func(t *testing.T) {
		st := testState(false)
		st.SelectCombined(1)
		want := []string{"v1080", "a256"}
		if got := st.ResolvedIDs(); !reflect.DeepEqual(got, want) {
			t.Errorf("ResolvedIDs() = %v, want %v", got, want)
		}
	})

	t.Run("native combined pick single id", func(t *testing.T) {
		st := testState(false)
		st.SelectCombined(2)
		want := []string{"c480"}
		if got := st.ResolvedIDs(); !reflect.DeepEqual(got, want) {
			t.Errorf("ResolvedIDs() = %v, want %v", got, want)
		}
	})

	t.Run("audio picks precede video pick", func(t *testing.T) {
		st := testState(true)
		st.SelectVideoOnly(1)
		st.ToggleAudioOnly(1)
		st.ToggleAudioOnly(0)
		want := []string{"a128", "a256", "v1080"}
		if got := st.ResolvedIDs(); !reflect.DeepEqual(got, want) {
			t.Errorf("ResolvedIDs() = %v, want %v", got, want)
		}
	})

	t.Run("empty state yields nil", func(t *testing.T) {
		st := testState(false)
		st.SelectSuggested() // toggle initial suggested off
		if got := st.ResolvedIDs(); got != nil {
			t.Errorf("ResolvedIDs() = %v, want nil", got)
		}
	})
}
