// Package journal implements the append-only transaction journal.
package journal

import (
	"io"
	"strings"

	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/zerr"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Journal records the lifecycle of one install operation in a durable resource.
// It is owned by a single orchestrator run and must not be shared between writers.
type Journal struct {
	resource ports.DurableResource
}

// New creates a Journal backed by the given resource.
func New(resource ports.DurableResource) *Journal {
	return &Journal{resource: resource}
}

// Begin appends the start marker.
func (j *Journal) Begin() error {
	return j.append("begin", domain.StartedEntry())
}

// Step appends one step description.
// Line breaks are flattened so that the description stays a single entry.
func (j *Journal) Step(description string) error {
	description = strings.TrimSpace(lineBreaks.Replace(description))
	switch description {
	case "":
		return zerr.With(domain.Mark(domain.ErrInvalidArgument), "reason", "empty step description")
	case domain.MarkerStarted, domain.MarkerCompleted:
		return zerr.With(domain.Mark(domain.ErrInvalidArgument), "reason", "step description collides with a journal marker")
	}
	return j.append("step", domain.StepEntry(description))
}

// Commit appends the completion marker.
func (j *Journal) Commit() error {
	return j.append("commit", domain.CompletedEntry())
}

// Entries returns the current journal contents.
func (j *Journal) Entries() ([]domain.Entry, error) {
	data, err := j.resource.ReadAll()
	if err != nil {
		return nil, ioError(err, "read")
	}
	return domain.ParseEntries(data), nil
}

// State derives the transaction state from the current contents.
func (j *Journal) State() (domain.TransactionState, error) {
	entries, err := j.Entries()
	if err != nil {
		return domain.StateEmpty, err
	}
	return domain.StateOf(entries), nil
}

// Rollback clears an unfinished journal.
// A committed transaction is history and cannot be rolled back.
func (j *Journal) Rollback() error {
	state, err := j.State()
	if err != nil {
		return err
	}
	if state == domain.StateCompleted {
		return domain.ErrTransactionAlreadyCompleted
	}
	return j.truncate("rollback")
}

// Reset clears the journal regardless of its state.
func (j *Journal) Reset() error {
	return j.truncate("reset")
}

func (j *Journal) append(op string, e domain.Entry) error {
	w, err := j.resource.OpenAppend()
	if err != nil {
		return ioError(err, op)
	}
	if _, err := io.WriteString(w, e.Line()+"\n"); err != nil {
		_ = w.Close()
		return ioError(err, op)
	}
	if err := w.Close(); err != nil {
		return ioError(err, op)
	}
	return nil
}

func (j *Journal) truncate(op string) error {
	w, err := j.resource.OpenTruncate()
	if err != nil {
		return ioError(err, op)
	}
	if err := w.Close(); err != nil {
		return ioError(err, op)
	}
	return nil
}

func ioError(err error, op string) error {
	return zerr.With(domain.MarkCause(domain.ErrJournalIO, err), "op", op)
}
