package domain

import "strings"

const (
	// MarkerStarted is the journal line recording the start of a transaction.
	MarkerStarted = "ISLEM BASLADI"

	// MarkerCompleted is the journal line recording the completion of a transaction.
	MarkerCompleted = "ISLEM TAMAMLANDI"
)

// EntryKind tags a journal entry.
type EntryKind int

const (
	// EntryStarted marks the beginning of a transaction.
	EntryStarted EntryKind = iota
	// EntryStep records a single step description.
	EntryStep
	// EntryCompleted marks a committed transaction.
	EntryCompleted
)

// String returns the string representation of the EntryKind.
func (k EntryKind) String() string {
	switch k {
	case EntryStarted:
		return "started"
	case EntryStep:
		return "step"
	case EntryCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Entry is one record of the transaction journal.
type Entry struct {
	Kind EntryKind
	Text string
}

// StartedEntry returns the entry marking the start of a transaction.
func StartedEntry() Entry { return Entry{Kind: EntryStarted} }

// StepEntry returns a step entry with the given description.
func StepEntry(text string) Entry { return Entry{Kind: EntryStep, Text: text} }

// CompletedEntry returns the entry marking a committed transaction.
func CompletedEntry() Entry { return Entry{Kind: EntryCompleted} }

// Line renders the entry as a single journal line without the trailing newline.
func (e Entry) Line() string {
	switch e.Kind {
	case EntryStarted:
		return MarkerStarted
	case EntryCompleted:
		return MarkerCompleted
	default:
		return e.Text
	}
}

// ParseEntry decodes one journal line.
// It returns false for blank lines, which carry no entry.
func ParseEntry(line string) (Entry, bool) {
	line = strings.TrimRight(line, "\r")
	switch line {
	case "":
		return Entry{}, false
	case MarkerStarted:
		return StartedEntry(), true
	case MarkerCompleted:
		return CompletedEntry(), true
	default:
		return StepEntry(line), true
	}
}

// ParseEntries decodes the full journal contents.
func ParseEntries(data []byte) []Entry {
	var entries []Entry
	for line := range strings.SplitSeq(string(data), "\n") {
		if e, ok := ParseEntry(line); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// TransactionState is derived from the journal contents.
type TransactionState int

const (
	// StateEmpty means the journal holds no entries.
	StateEmpty TransactionState = iota
	// StateInProgress means the last entry is not a completion marker.
	StateInProgress
	// StateCompleted means the last entry is a completion marker.
	StateCompleted
)

// String returns the string representation of the TransactionState.
func (s TransactionState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// StateOf derives the transaction state from a list of entries.
func StateOf(entries []Entry) TransactionState {
	if len(entries) == 0 {
		return StateEmpty
	}
	if entries[len(entries)-1].Kind == EntryCompleted {
		return StateCompleted
	}
	return StateInProgress
}
