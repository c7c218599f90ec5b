// Package progrock records installation steps as progrock vertices.
package progrock

import (
	"context"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/paket/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry on a progrock recorder.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu     sync.Mutex
	counts Counts
}

// Counts summarizes the vertices recorded so far.
type Counts struct {
	Started   int
	Completed int
	Failed    int
	Cached    int
}

// New creates a Recorder on an in-memory tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder writing to w.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts a vertex named after the unit of work. Its digest is derived from the name,
// so recording the same step twice addresses the same vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := r.rec.Vertex(digest.FromString(name), name)

	r.mu.Lock()
	r.counts.Started++
	r.mu.Unlock()

	vertex := &Vertex{vertex: v, owner: r}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Counts returns a snapshot of the recorded vertex counts.
func (r *Recorder) Counts() Counts {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts
}

// Close closes the underlying writer.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (r *Recorder) finish(err error, cached bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case cached:
		r.counts.Cached++
	case err != nil:
		r.counts.Failed++
	default:
		r.counts.Completed++
	}
}
