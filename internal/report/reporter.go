// Package report times pipeline phases and prints throughput progress.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultProgressEvery is how many documents pass between progress lines.
const DefaultProgressEvery = 5000

// Phase names recorded in metrics.
const (
	PhaseGenerate = "generate"
	PhaseWrite    = "write"
	PhaseQueries  = "queries"
	PhasePublish  = "publish"
	PhaseTotal    = "total"
)

// minElapsed keeps rates finite when a phase finishes within clock resolution.
const minElapsed = time.Microsecond

// Reporter observes phase boundaries. It never affects what is generated.
type Reporter struct {
	out     io.Writer
	metrics *Metrics
	now     func() time.Time
	every   int

	runStart   time.Time
	phaseStart time.Time
	total      int
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

// WithProgressEvery sets the progress interval; non-positive disables progress lines.
func WithProgressEvery(n int) Option {
	return func(r *Reporter) { r.every = n }
}

// NewReporter creates a reporter printing to out. metrics may be nil.
func NewReporter(out io.Writer, metrics *Metrics, opts ...Option) *Reporter {
	r := &Reporter{
		out:     out,
		metrics: metrics,
		now:     time.Now,
		every:   DefaultProgressEvery,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.out == nil {
		r.out = io.Discard
	}
	return r
}

// Start marks the beginning of the run.
func (r *Reporter) Start() {
	r.runStart = r.now()
}

// BeginGeneration marks the start of the document pass for total documents.
func (r *Reporter) BeginGeneration(total int) {
	r.total = total
	r.phaseStart = r.now()
	fmt.Fprintf(r.out, "Generating %s documents...\n", humanize.Comma(int64(total)))
}

// DocumentGenerated is the generator's progress callback. Rates are measured
// from the start of the run, and an ETA assumes the observed rate holds.
func (r *Reporter) DocumentGenerated(done int) {
	if r.metrics != nil {
		r.metrics.DocumentsGenerated.Inc()
	}
	if r.every <= 0 || done%r.every != 0 {
		return
	}
	rate := Rate(done, r.since(r.runStart))
	eta := 0.0
	if rate > 0 {
		eta = float64(r.total-done) / rate
	}
	fmt.Fprintf(r.out, "  Generated %s documents (%.0f docs/sec, ETA: %.0fs)\n",
		humanize.Comma(int64(done)), rate, eta)
}

// EndGeneration records the document pass duration.
func (r *Reporter) EndGeneration() time.Duration {
	return r.endPhase(PhaseGenerate)
}

// BeginWrite marks the start of the file-write phase.
func (r *Reporter) BeginWrite(location string) {
	r.phaseStart = r.now()
	fmt.Fprintf(r.out, "Writing documents to %s...\n", location)
}

// DocumentWritten counts one written file.
func (r *Reporter) DocumentWritten() {
	if r.metrics != nil {
		r.metrics.DocumentsWritten.Inc()
	}
}

// EndWrite prints write throughput and returns the phase duration.
func (r *Reporter) EndWrite(files int) time.Duration {
	d := r.endPhase(PhaseWrite)
	fmt.Fprintf(r.out, "  Wrote %s files in %.1fs (%.0f files/sec)\n",
		humanize.Comma(int64(files)), d.Seconds(), Rate(files, d))
	return d
}

// BeginPhase marks the start of a named phase.
func (r *Reporter) BeginPhase(message string) {
	r.phaseStart = r.now()
	fmt.Fprintln(r.out, message)
}

// EndPhase records the named phase duration.
func (r *Reporter) EndPhase(phase string) time.Duration {
	return r.endPhase(phase)
}

// QueriesGenerated records query counts.
func (r *Reporter) QueriesGenerated(queries, fallback int) {
	if r.metrics == nil {
		return
	}
	r.metrics.QueriesGenerated.Add(float64(queries))
	r.metrics.FallbackAnchors.Add(float64(fallback))
}

// CorpusSize records the total content size.
func (r *Reporter) CorpusSize(bytes int64) {
	if r.metrics != nil {
		r.metrics.CorpusBytes.Set(float64(bytes))
	}
}

// Finish records and returns the total run duration.
func (r *Reporter) Finish() time.Duration {
	d := r.since(r.runStart)
	if r.metrics != nil {
		r.metrics.PhaseSeconds.WithLabelValues(PhaseTotal).Set(d.Seconds())
	}
	return d
}

func (r *Reporter) endPhase(phase string) time.Duration {
	d := r.since(r.phaseStart)
	if r.metrics != nil {
		r.metrics.PhaseSeconds.WithLabelValues(phase).Set(d.Seconds())
	}
	return d
}

func (r *Reporter) since(t time.Time) time.Duration {
	return r.now().Sub(t)
}

// Rate returns n per second over d, treating sub-microsecond durations as one
// microsecond so a phase that finishes instantly never divides by zero.
func Rate(n int, d time.Duration) float64 {
	if d < minElapsed {
		d = minElapsed
	}
	return float64(n) / d.Seconds()
}
