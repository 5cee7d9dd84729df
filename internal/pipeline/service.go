// Package pipeline orchestrates the fetch → catalog → validate → rank
// workflow that turns extractor metadata into a selectable session.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"streampick/internal/catalog"
	"streampick/internal/extractor"
	"streampick/internal/merge"
	"streampick/internal/model"
	"streampick/internal/progress"
	"streampick/internal/selection"
	"streampick/internal/util"
	"streampick/internal/validate"
)

// ResolveOptions controls one resolution flow.
type ResolveOptions struct {
	// CheckAccessibility enables the per-format network probe.
	CheckAccessibility bool
	// AudioOnlyMode disables merged candidate synthesis; the caller wants
	// audio extraction only.
	AudioOnlyMode bool
	// MultiAudio allows more than one audio-only pick in the selection.
	MultiAudio bool
	Verbose    bool
}

// Service orchestrates metadata resolution into ranked, validated sessions.
type Service struct {
	extractorPath string
	runner        util.CmdRunner
	validator     *validate.Validator
	reporter      progress.Reporter
	opts          ResolveOptions
}

// Option configures a Service.
type Option func(*Service)

// WithExtractorPath sets the extractor (yt-dlp/youtube-dl) binary path.
func WithExtractorPath(p string) Option {
	return func(s *Service) {
		s.extractorPath = p
	}
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

// WithValidator sets the format validator.
func WithValidator(v *validate.Validator) Option {
	return func(s *Service) {
		s.validator = v
	}
}

// WithReporter attaches a progress reporter (used by TUI).
func WithReporter(rp progress.Reporter) Option {
	return func(s *Service) {
		s.reporter = rp
	}
}

// WithResolveOptions sets the per-flow options.
func WithResolveOptions(o ResolveOptions) Option {
	return func(s *Service) {
		s.opts = o
	}
}

// NewService constructs a new Service with the provided options.
// It applies sensible defaults for missing components.
func NewService(opts ...Option) *Service {
	s := &Service{}
	for _, o := range opts {
		o(s)
	}
	if s.validator == nil {
		s.validator = validate.New()
	}
	return s
}

// Session is the outcome of one resolution flow: the validated pools and the
// ranked candidate list a selection state machine operates over. It is an
// immutable snapshot; selection happens on states created from it.
type Session struct {
	ID   string
	Meta model.Metadata

	Catalog    *catalog.Catalog
	Candidates []merge.Candidate
	VideoOnly  []model.Format
	AudioOnly  []model.Format

	multiAudio bool
}

// NewSelection creates a fresh selection state machine over the session.
func (s *Session) NewSelection() *selection.State {
	return selection.New(s.Candidates, s.VideoOnly, s.AudioOnly, s.Catalog.Requested, s.multiAudio)
}

// ResolveURL fetches metadata for a URL via the extractor binary and
// resolves it into a Session.
func (svc *Service) ResolveURL(ctx context.Context, url string) (*Session, error) {
	id := uuid.NewString()
	svc.emitUpdate(progress.Update{
		SessionID: id,
		Stage:     progress.StageFetching,
		Message:   "Fetching metadata",
	})
	meta, err := extractor.Fetch(ctx, url, extractor.Options{
		BinaryPath: svc.extractorPath,
		Verbose:    svc.opts.Verbose,
		Runner:     svc.runner,
	})
	if err != nil {
		ferr := fmt.Errorf("extractor: %w", err)
		svc.emitResult(progress.Result{SessionID: id, Err: ferr})
		return nil, ferr
	}
	return svc.resolve(ctx, id, meta)
}

// ResolveFile parses a dumped metadata JSON file and resolves it.
func (svc *Service) ResolveFile(ctx context.Context, path string) (*Session, error) {
	id := uuid.NewString()
	meta, err := extractor.ParseFile(path)
	if err != nil {
		svc.emitResult(progress.Result{SessionID: id, Err: err})
		return nil, err
	}
	return svc.resolve(ctx, id, meta)
}

// Resolve runs the flow over already-obtained metadata.
func (svc *Service) Resolve(ctx context.Context, meta model.Metadata) (*Session, error) {
	return svc.resolve(ctx, uuid.NewString(), meta)
}

func (svc *Service) resolve(ctx context.Context, id string, meta model.Metadata) (*Session, error) {
	cat := catalog.New(meta)

	svc.emitUpdate(progress.Update{
		SessionID: id,
		Stage:     progress.StageValidating,
		Formats:   cat.Size(),
		Message:   fmt.Sprintf("Validating %d formats", cat.Size()),
	})

	combined := svc.validator.FilterValid(ctx, cat.Combined, svc.opts.CheckAccessibility)
	videoOnly := svc.validator.FilterValid(ctx, cat.VideoOnly, svc.opts.CheckAccessibility)
	audioOnly := svc.validator.FilterValid(ctx, cat.AudioOnly, svc.opts.CheckAccessibility)

	combined = validate.DeduplicateByResolution(combined)
	videoOnly = validate.DeduplicateByResolution(videoOnly)

	svc.emitUpdate(progress.Update{
		SessionID: id,
		Stage:     progress.StageRanking,
		Formats:   len(combined) + len(videoOnly) + len(audioOnly),
		Message:   "Ranking candidates",
	})

	cands := merge.Merge(videoOnly, audioOnly, combined, merge.Options{
		AudioOnlyMode: svc.opts.AudioOnlyMode,
	})

	svc.emitUpdate(progress.Update{
		SessionID: id,
		Stage:     progress.StageReady,
		Formats:   len(cands),
		Message:   fmt.Sprintf("%d candidates ready", len(cands)),
	})
	svc.emitResult(progress.Result{SessionID: id, Candidates: len(cands)})

	return &Session{
		ID:         id,
		Meta:       meta,
		Catalog:    cat,
		Candidates: cands,
		VideoOnly:  videoOnly,
		AudioOnly:  audioOnly,
		multiAudio: svc.opts.MultiAudio,
	}, nil
}

func (svc *Service) emitUpdate(u progress.Update) {
	if svc.reporter != nil {
		svc.reporter.Update(u)
	}
}

func (svc *Service) emitResult(r progress.Result) {
	if svc.reporter != nil {
		svc.reporter.Result(r)
	}
}
