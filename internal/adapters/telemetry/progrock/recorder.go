// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry using the vito/progrock library.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
	seq atomic.Uint64

	started   atomic.Uint64
	cached    atomic.Uint64
	failed    atomic.Uint64
	completed atomic.Uint64
}

// New creates a new Recorder writing to an in-memory tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts a new vertex. Repeated names get distinct digests, so every
// model lookup shows up as its own vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(name + "#" + strconv.FormatUint(r.seq.Add(1), 10))
	r.started.Add(1)
	return ctx, &Vertex{vertex: r.rec.Vertex(d, name), recorder: r}
}

// Summary returns the vertex counters.
func (r *Recorder) Summary() domain.TelemetrySummary {
	return domain.TelemetrySummary{
		Started:   r.started.Load(),
		Cached:    r.cached.Load(),
		Failed:    r.failed.Load(),
		Completed: r.completed.Load(),
	}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.w.Close()
}
