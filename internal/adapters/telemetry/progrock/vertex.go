package progrock

import (
	"io"
	"sync"

	"github.com/vito/progrock"
)

// Vertex implements ports.Vertex on a *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
	owner  *Recorder
	once   sync.Once
}

// Stdout returns a writer attached to the vertex output.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Complete marks the vertex as finished. Only the first call counts.
func (v *Vertex) Complete(err error) {
	v.once.Do(func() {
		v.vertex.Done(err)
		v.owner.finish(err, false)
	})
}

// Cached marks the vertex as satisfied by earlier work and finishes it.
func (v *Vertex) Cached() {
	v.once.Do(func() {
		v.vertex.Cached()
		v.vertex.Done(nil)
		v.owner.finish(nil, true)
	})
}
