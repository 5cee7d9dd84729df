// Package validate filters format candidates through DRM, URL, codec, and
// optional live-accessibility checks, and deduplicates them by resolution.
package validate

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"streampick/internal/model"
)

// Reason explains why a format failed validation.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonDRMProtected
	ReasonNoURL
	ReasonUnsupportedCodec
	ReasonInaccessible
	ReasonValidationError
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonDRMProtected:
		return "drm-protected"
	case ReasonNoURL:
		return "no-url"
	case ReasonUnsupportedCodec:
		return "unsupported-codec"
	case ReasonInaccessible:
		return "inaccessible"
	case ReasonValidationError:
		return "validation-error"
	default:
		return "unknown"
	}
}

// CheckedFlags records which checks ran and passed for one format.
// A flag is false both when its check failed and when it never ran
// (checks short-circuit on the first failure).
type CheckedFlags struct {
	HasValidURL      bool
	HasSupportedCodec bool
	IsDRMFree        bool
	IsAccessible     bool
}

// Result is the immutable verdict for one format in one validation pass.
type Result struct {
	Valid   bool
	Reason  Reason
	Checked CheckedFlags
}

// Blocklists holds codec prefixes to reject. They are supplied by
// configuration so policy changes don't require touching this package.
type Blocklists struct {
	VideoCodecPrefixes []string
	AudioCodecPrefixes []string
}

// drmIndicators are scanned case-insensitively in format labels and notes.
var drmIndicators = []string{"drm", "encrypted", "widevine", "playready", "fairplay", "protected"}

const (
	defaultProbeTimeout     = 5 * time.Second
	defaultProbeConcurrency = 8
)

// Validator applies the multi-stage validity filter.
type Validator struct {
	blocklists  Blocklists
	prober      Prober
	timeout     time.Duration
	concurrency int
}

// Option configures a Validator.
type Option func(*Validator)

// WithBlocklists sets the codec blocklists.
func WithBlocklists(b Blocklists) Option {
	return func(v *Validator) {
		v.blocklists = b
	}
}

// WithProber injects the accessibility prober (useful for testing).
func WithProber(p Prober) Option {
	return func(v *Validator) {
		v.prober = p
	}
}

// WithProbeTimeout sets the per-probe timeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(v *Validator) {
		v.timeout = d
	}
}

// WithProbeConcurrency caps concurrent in-flight probes.
func WithProbeConcurrency(n int) Option {
	return func(v *Validator) {
		v.concurrency = n
	}
}

// New constructs a Validator with defaults for missing options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, o := range opts {
		o(v)
	}
	if v.prober == nil {
		v.prober = NewHTTPProber("")
	}
	if v.timeout <= 0 {
		v.timeout = defaultProbeTimeout
	}
	if v.concurrency <= 0 {
		v.concurrency = defaultProbeConcurrency
	}
	return v
}

// Validate runs the checks in fixed order, cheapest first, short-circuiting
// on the first failure: DRM indicators, URL presence, codec blocklists, and
// (only when checkAccessibility is set) a network probe. Probe failures are
// converted to results, never propagated as errors.
func (v *Validator) Validate(ctx context.Context, f model.Format, checkAccessibility bool) Result {
	var res Result

	if hasDRMIndicator(f) {
		res.Reason = ReasonDRMProtected
		return res
	}
	res.Checked.IsDRMFree = true

	if strings.TrimSpace(f.URL) == "" {
		res.Reason = ReasonNoURL
		return res
	}
	res.Checked.HasValidURL = true

	if v.codecBlocked(f) {
		res.Reason = ReasonUnsupportedCodec
		return res
	}
	res.Checked.HasSupportedCodec = true

	if checkAccessibility {
		probeCtx, cancel := context.WithTimeout(ctx, v.timeout)
		defer cancel()
		status, err := v.prober.Probe(probeCtx, f.URL)
		if err != nil {
			res.Reason = ReasonValidationError
			return res
		}
		if status != 200 && status != 206 {
			res.Reason = ReasonInaccessible
			return res
		}
		res.Checked.IsAccessible = true
	}

	res.Valid = true
	return res
}

// FilterValid returns the formats that pass Validate, preserving input
// order. With accessibility checking enabled, probes run concurrently with
// a bounded fan-out; each probe carries its own timeout and the call
// completes only after every probe resolves. Ordering of the output never
// depends on probe completion order.
func (v *Validator) FilterValid(ctx context.Context, formats []model.Format, checkAccessibility bool) []model.Format {
	if !checkAccessibility {
		var out []model.Format
		for _, f := range formats {
			if v.Validate(ctx, f, false).Valid {
				out = append(out, f)
			}
		}
		return out
	}

	results := make([]Result, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i := range formats {
		i := i
		g.Go(func() error {
			results[i] = v.Validate(gctx, formats[i], true)
			return nil
		})
	}
	// Workers never return errors; verdicts land in results.
	_ = g.Wait()

	var out []model.Format
	for i, f := range formats {
		if results[i].Valid {
			out = append(out, f)
		}
	}
	return out
}

func hasDRMIndicator(f model.Format) bool {
	label := strings.ToLower(f.Label)
	note := strings.ToLower(f.Note)
	for _, ind := range drmIndicators {
		if strings.Contains(label, ind) || strings.Contains(note, ind) {
			return true
		}
	}
	return false
}

func (v *Validator) codecBlocked(f model.Format) bool {
	if f.HasVideo() {
		for _, p := range v.blocklists.VideoCodecPrefixes {
			if p != "" && strings.HasPrefix(f.VideoCodec, p) {
				return true
			}
		}
	}
	if f.HasAudio() {
		for _, p := range v.blocklists.AudioCodecPrefixes {
			if p != "" && strings.HasPrefix(f.AudioCodec, p) {
				return true
			}
		}
	}
	return false
}
