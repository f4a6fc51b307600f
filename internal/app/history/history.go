// Package history keeps the local, bounded log of distillation results.
package history

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"briefly/internal/app/model"
)

// MaxEntries caps every store; older entries are discarded on Append.
const MaxEntries = 50

// Entry is one stored distillation
type Entry struct {
	ID string `json:"id"`
	model.DistillationResult
}

// Sink is the history store owned by the CLI and HTTP boundary.
// List returns entries most-recent-first.
type Sink interface {
	Append(ctx context.Context, result model.DistillationResult) (Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Clear(ctx context.Context) error
	Close() error
}

// Open returns the store for path: SQLite for *.db files, a JSON file otherwise
func Open(path string) (Sink, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStore(path)
	default:
		return NewJSONFileStore(path), nil
	}
}

func newEntry(result model.DistillationResult) Entry {
	return Entry{ID: uuid.NewString(), DistillationResult: result}
}

// prepend puts entry first and drops anything past MaxEntries
func prepend(entries []Entry, entry Entry) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entry)
	out = append(out, entries...)
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}
