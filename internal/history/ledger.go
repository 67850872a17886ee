// Package history records completed export operations so the most recent
// one can be reversed.
//
// The ledger lives only in memory for the lifetime of the process. It is a
// stack: exports push, undo pops. An operation that deleted its originals
// can never be undone and blocks undo of everything beneath it.
package history

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrEmptyHistory indicates there is nothing to undo.
	ErrEmptyHistory = errors.New("no export operations to undo")

	// ErrIrreversible indicates the most recent operation deleted its originals.
	ErrIrreversible = errors.New("last export deleted the original files and cannot be undone")
)

// State is the lifecycle state of a recorded operation.
type State string

// State constants
const (
	StateCompleted    State = "completed"
	StateIrreversible State = "irreversible"
)

// Operation is an immutable record of one export.
type Operation struct {
	// ID uniquely identifies the operation (ULID, sortable by time)
	ID string `json:"id"`

	// Destination is the directory the files were written to
	Destination string `json:"destination"`

	// Paths lists the written files in the order they were copied
	Paths []string `json:"paths"`

	// Checksums maps each written path to its SHA-256 at export time
	Checksums map[string]string `json:"checksums,omitempty"`

	// Timestamp is when the operation was recorded
	Timestamp time.Time `json:"timestamp"`

	// OriginalsDeleted records that the export was asked to delete sources
	OriginalsDeleted bool `json:"originalsDeleted"`
}

// NewOperation creates an Operation. paths must be non-empty; the slice and
// map are copied so later changes by the caller do not leak in.
func NewOperation(destination string, paths []string, checksums map[string]string, ts time.Time, originalsDeleted bool) (Operation, error) {
	if len(paths) == 0 {
		return Operation{}, errors.New("operation must record at least one written path")
	}

	id, err := ulid.New(ulid.Timestamp(ts), ulid.Monotonic(rand.Reader, 0))
	if err != nil {
		return Operation{}, err
	}

	op := Operation{
		ID:               id.String(),
		Destination:      destination,
		Paths:            append([]string(nil), paths...),
		Timestamp:        ts,
		OriginalsDeleted: originalsDeleted,
	}
	if len(checksums) > 0 {
		op.Checksums = make(map[string]string, len(checksums))
		for k, v := range checksums {
			op.Checksums[k] = v
		}
	}
	return op, nil
}

// State returns the lifecycle state of the operation while it is on the ledger.
func (o Operation) State() State {
	if o.OriginalsDeleted {
		return StateIrreversible
	}
	return StateCompleted
}

// Ledger is an ordered stack of operations. It is not safe for concurrent
// use; the engine serializes access.
type Ledger struct {
	ops []Operation
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Push appends an operation.
func (l *Ledger) Push(op Operation) {
	l.ops = append(l.ops, op)
}

// Len returns the number of recorded operations.
func (l *Ledger) Len() int {
	return len(l.ops)
}

// Peek returns the most recent operation without removing it.
func (l *Ledger) Peek() (Operation, bool) {
	if len(l.ops) == 0 {
		return Operation{}, false
	}
	return l.ops[len(l.ops)-1], true
}

// NextUndo returns the operation that Undo would reverse, or the reason it
// cannot. The ledger is never modified.
func (l *Ledger) NextUndo() (Operation, error) {
	op, ok := l.Peek()
	if !ok {
		return Operation{}, ErrEmptyHistory
	}
	if op.OriginalsDeleted {
		return op, ErrIrreversible
	}
	return op, nil
}

// Pop removes the most recent operation. It only succeeds when the
// operation id matches the top of the stack, so a caller cannot pop
// something other than what it reversed.
func (l *Ledger) Pop(id string) (Operation, error) {
	op, err := l.NextUndo()
	if err != nil {
		return op, err
	}
	if op.ID != id {
		return Operation{}, errors.New("ledger changed since undo started")
	}
	l.ops = l.ops[:len(l.ops)-1]
	return op, nil
}

// List returns a copy of all operations, oldest first.
func (l *Ledger) List() []Operation {
	out := make([]Operation, len(l.ops))
	copy(out, l.ops)
	return out
}
