package history

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	apperrors "briefly/internal/app/errors"
	"briefly/internal/app/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS distillations (
	id                     TEXT PRIMARY KEY,
	type                   TEXT NOT NULL,
	summary                TEXT NOT NULL,
	transcription          TEXT NOT NULL DEFAULT '',
	original_text          TEXT NOT NULL DEFAULT '',
	source_name            TEXT NOT NULL DEFAULT '',
	transcription_provider TEXT NOT NULL DEFAULT '',
	summary_provider       TEXT NOT NULL DEFAULT '',
	created_at             DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_distillations_created_at ON distillations(created_at);`

const (
	insertSQL = `INSERT INTO distillations (id, type, summary, transcription, original_text, source_name, transcription_provider, summary_provider, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	trimSQL = `DELETE FROM distillations WHERE id NOT IN (SELECT id FROM distillations ORDER BY created_at DESC, rowid DESC LIMIT ?)`

	listSQL = `
		SELECT id, type, summary, transcription, original_text, source_name, transcription_provider, summary_provider, created_at
		FROM distillations
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`

	clearSQL = `DELETE FROM distillations`
)

// SQLiteStore keeps history in a local SQLite database.
// Segments are not persisted.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the schema
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", path))
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrHistoryWriteFailed, "open %s: %v", path, err)
	}
	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	if _, err := s.db.Exec(createTableSQL); err != nil {
		return apperrors.Wrapf(apperrors.ErrHistoryWriteFailed, "create table: %v", err)
	}
	return nil
}

func (s *SQLiteStore) Append(ctx context.Context, result model.DistillationResult) (Entry, error) {
	entry := newEntry(result)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, apperrors.Wrapf(apperrors.ErrHistoryWriteFailed, "begin: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, insertSQL,
		entry.ID, string(result.Type), result.Summary, result.Transcription, result.OriginalText,
		result.SourceName, result.TranscriptionProvider, result.SummaryProvider, result.Timestamp.UTC())
	if err != nil {
		return Entry{}, apperrors.Wrapf(apperrors.ErrHistoryWriteFailed, "insert: %v", err)
	}
	if _, err := tx.ExecContext(ctx, trimSQL, MaxEntries); err != nil {
		return Entry{}, apperrors.Wrapf(apperrors.ErrHistoryWriteFailed, "trim: %v", err)
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, apperrors.Wrapf(apperrors.ErrHistoryWriteFailed, "commit: %v", err)
	}
	return entry, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, listSQL, MaxEntries)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrHistoryReadFailed, "query: %v", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var resultType string
		err = rows.Scan(&e.ID, &resultType, &e.Summary, &e.Transcription, &e.OriginalText,
			&e.SourceName, &e.TranscriptionProvider, &e.SummaryProvider, &e.Timestamp)
		if err != nil {
			return nil, apperrors.Wrapf(apperrors.ErrHistoryReadFailed, "scan: %v", err)
		}
		e.Type = model.ResultType(resultType)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrHistoryReadFailed, "rows: %v", err)
	}
	return entries, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, clearSQL); err != nil {
		return apperrors.Wrapf(apperrors.ErrHistoryWriteFailed, "clear: %v", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
