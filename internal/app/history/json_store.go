package history

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	apperrors "briefly/internal/app/errors"
	"briefly/internal/app/model"
)

// JSONFileStore keeps history as a JSON array in a single file.
// Writes go to a temp file that is renamed over the original.
type JSONFileStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONFileStore creates a store at path; the file is created on first Append
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Path returns the backing file
func (s *JSONFileStore) Path() string {
	return s.path
}

func (s *JSONFileStore) Append(ctx context.Context, result model.DistillationResult) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return Entry{}, err
	}
	entry := newEntry(result)
	if err := s.write(prepend(entries, entry)); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *JSONFileStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *JSONFileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write([]Entry{})
}

func (s *JSONFileStore) Close() error {
	return nil
}

func (s *JSONFileStore) read() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrHistoryReadFailed, "read %s: %v", s.path, err)
	}
	if len(data) == 0 {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrHistoryReadFailed, "decode %s: %v", s.path, err)
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries, nil
}

func (s *JSONFileStore) write(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperrors.Wrapf(apperrors.ErrHistoryWriteFailed, "create dir: %v", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrHistoryWriteFailed, "encode: %v", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".history-*.json")
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrHistoryWriteFailed, "temp file: %v", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperrors.Wrapf(apperrors.ErrHistoryWriteFailed, "write: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Wrapf(apperrors.ErrHistoryWriteFailed, "close: %v", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return apperrors.Wrapf(apperrors.ErrHistoryWriteFailed, "rename: %v", err)
	}
	return nil
}
