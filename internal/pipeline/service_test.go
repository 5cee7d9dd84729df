package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"streampick/internal/progress"
	"streampick/internal/selection"
	"streampick/internal/util"
	"streampick/internal/validate"
)

const sessionJSON = `{
  "id": "vid42",
  "title": "Conference Talk",
  "formats": [
    {"format_id": "c360", "vcodec": "avc1", "acodec": "mp4a", "width": 640, "height": 360, "url": "https://x/c360"},
    {"format_id": "c480", "vcodec": "avc1", "acodec": "mp4a", "width": 854, "height": 480, "url": "https://x/c480"},
    {"format_id": "v720", "vcodec": "vp9", "acodec": "none", "width": 1280, "height": 720, "url": "https://x/v720"},
    {"format_id": "v1080", "vcodec": "vp9", "acodec": "none", "width": 1920, "height": 1080, "url": "https://x/v1080"},
    {"format_id": "v2160", "vcodec": "vp9", "acodec": "none", "width": 3840, "height": 2160, "url": "https://x/v2160"},
    {"format_id": "a128", "vcodec": "none", "acodec": "opus", "filesize": 2000000, "url": "https://x/a128"},
    {"format_id": "a256", "vcodec": "none", "acodec": "opus", "filesize": 4000000, "url": "https://x/a256"},
    {"format_id": "drm", "vcodec": "avc1", "acodec": "mp4a", "width": 1920, "height": 1080, "format_note": "widevine", "url": "https://x/drm"},
    {"format_id": "dead", "vcodec": "avc1", "acodec": "mp4a", "width": 1280, "height": 720},
    {"format_id": "story", "vcodec": "none", "acodec": "none", "url": "https://x/story"}
  ],
  "requested_formats": [
    {"format_id": "v1080", "vcodec": "vp9", "acodec": "none"},
    {"format_id": "a128", "vcodec": "none", "acodec": "opus"}
  ]
}`

type fakeRunner struct {
	stdout string
	err    error
	spec   util.CmdSpec
}

func (f *fakeRunner) Run(ctx context.Context, spec util.CmdSpec) (util.CmdResult, error) {
	f.spec = spec
	return util.CmdResult{Stdout: []byte(f.stdout)}, f.err
}

type recordingReporter struct {
	updates []progress.Update
	results []progress.Result
}

func (r *recordingReporter) Update(u progress.Update) { r.updates = append(r.updates, u) }
func (r *recordingReporter) Result(res progress.Result) { r.results = append(r.results, res) }

func (r *recordingReporter) stages() []progress.Stage {
	var out []progress.Stage
	for _, u := range r.updates {
		out = append(out, u.Stage)
	}
	return out
}

func candidateIDs(s *Session) []string {
	var out []string
	for _, c := range s.Candidates {
		out = append(out, c.Format.ID)
	}
	return out
}

func TestResolveURLBuildsRankedSession(t *testing.T) {
	runner := &fakeRunner{stdout: sessionJSON}
	reporter := &recordingReporter{}
	svc := NewService(
		WithExtractorPath("yt-dlp"),
		WithRunner(runner),
		WithReporter(reporter),
	)

	session, err := svc.ResolveURL(context.Background(), "https://x/watch?v=vid42")
	if err != nil {
		t.Fatalf("ResolveURL() error = %v", err)
	}
	if session.ID == "" {
		t.Error("session ID is empty")
	}
	if session.Meta.ID != "vid42" {
		t.Errorf("Meta.ID = %q, want vid42", session.Meta.ID)
	}

	// DRM, URL-less, and codec-less formats never reach the pools; the
	// remainder ranks merged video-only pairs above native combined.
	want := []string{"v2160", "v1080", "v720", "c480", "c360"}
	if got := candidateIDs(session); !reflect.DeepEqual(got, want) {
		t.Errorf("candidates = %v, want %v", got, want)
	}
	for i := 0; i < 3; i++ {
		c := session.Candidates[i]
		if !c.Merged() || c.Audio.ID != "a256" {
			t.Errorf("candidate[%d] audio pairing = %+v, want merge with a256", i, c.Audio)
		}
	}

	wantStages := []progress.Stage{
		progress.StageFetching,
		progress.StageValidating,
		progress.StageRanking,
		progress.StageReady,
	}
	if got := reporter.stages(); !reflect.DeepEqual(got, wantStages) {
		t.Errorf("stages = %v, want %v", got, wantStages)
	}
	if len(reporter.results) != 1 || reporter.results[0].Err != nil || reporter.results[0].Candidates != 5 {
		t.Errorf("results = %+v, want one success with 5 candidates", reporter.results)
	}
}

func TestResolveURLExtractorFailure(t *testing.T) {
	runner := &fakeRunner{stdout: "", err: os.ErrNotExist}
	reporter := &recordingReporter{}
	svc := NewService(WithExtractorPath("yt-dlp"), WithRunner(runner), WithReporter(reporter))

	_, err := svc.ResolveURL(context.Background(), "https://x/v")
	if err == nil {
		t.Fatal("ResolveURL() succeeded, want error")
	}
	if len(reporter.results) != 1 || reporter.results[0].Err == nil {
		t.Errorf("results = %+v, want one failure", reporter.results)
	}
}

func TestResolveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	if err := os.WriteFile(path, []byte(sessionJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewService()
	session, err := svc.ResolveFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ResolveFile() error = %v", err)
	}
	if session.Meta.ID != "vid42" {
		t.Errorf("Meta.ID = %q, want vid42", session.Meta.ID)
	}
	if len(session.Candidates) != 5 {
		t.Errorf("got %d candidates, want 5", len(session.Candidates))
	}
}

func TestResolveFileMissing(t *testing.T) {
	svc := NewService()
	if _, err := svc.ResolveFile(context.Background(), filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ResolveFile() succeeded, want error")
	}
}

func TestResolveAudioOnlyMode(t *testing.T) {
	runner := &fakeRunner{stdout: sessionJSON}
	svc := NewService(
		WithExtractorPath("yt-dlp"),
		WithRunner(runner),
		WithResolveOptions(ResolveOptions{AudioOnlyMode: true}),
	)

	session, err := svc.ResolveURL(context.Background(), "https://x/v")
	if err != nil {
		t.Fatalf("ResolveURL() error = %v", err)
	}
	if len(session.Candidates) != 0 {
		t.Errorf("got %d candidates, want 0 in audio-only mode", len(session.Candidates))
	}
	if len(session.AudioOnly) != 2 {
		t.Errorf("got %d audio formats, want 2", len(session.AudioOnly))
	}
}

func TestResolveWithCodecBlocklist(t *testing.T) {
	v := validate.New(validate.WithBlocklists(validate.Blocklists{VideoCodecPrefixes: []string{"vp9"}}))
	svc := NewService(WithExtractorPath("yt-dlp"), WithRunner(&fakeRunner{stdout: sessionJSON}), WithValidator(v))

	session, err := svc.ResolveURL(context.Background(), "https://x/v")
	if err != nil {
		t.Fatalf("ResolveURL() error = %v", err)
	}
	// All vp9 video-only streams are rejected, leaving only the native
	// combined avc1 formats.
	want := []string{"c480", "c360"}
	if got := candidateIDs(session); !reflect.DeepEqual(got, want) {
		t.Errorf("candidates = %v, want %v", got, want)
	}
}

func TestSessionSelectionEndToEnd(t *testing.T) {
	runner := &fakeRunner{stdout: sessionJSON}
	svc := NewService(WithExtractorPath("yt-dlp"), WithRunner(runner))

	session, err := svc.ResolveURL(context.Background(), "https://x/v")
	if err != nil {
		t.Fatalf("ResolveURL() error = %v", err)
	}

	st := session.NewSelection()
	if !st.SuggestedSelected() {
		t.Fatal("fresh selection not suggested despite requested formats")
	}

	// Picking the top candidate resolves to the 4K video paired with the
	// best audio stream.
	st.SelectCombined(0)
	var b selection.Builder
	cfg, err := b.Build(st)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := []string{"v2160", "a256"}
	if !reflect.DeepEqual(cfg.FormatIDs, want) {
		t.Errorf("FormatIDs = %v, want %v", cfg.FormatIDs, want)
	}
}
