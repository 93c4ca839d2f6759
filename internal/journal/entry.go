package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Entry is one recorded export.
type Entry struct {
	ID        int64     `json:"id"`
	Path      string    `json:"path"`
	Size      int       `json:"size"`
	Checksum  string    `json:"checksum"`
	FileID    string    `json:"file_id"`
	Creator   string    `json:"creator"`
	CreatedAt time.Time `json:"created_at"`
}

// Record appends an entry and returns its ID. The entry's ID field is
// ignored. CreatedAt is stored in UTC.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO exports
		(path, size, checksum, file_id, creator, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		e.Path,
		e.Size,
		e.Checksum,
		e.FileID,
		e.Creator,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("record export: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record export: %w", err)
	}
	return id, nil
}

// List returns up to limit entries, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, size, checksum, file_id, creator, created_at
		FROM exports
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return scanEntries(rows)
}

// ForPath returns every entry for a destination path, newest first.
func (s *Store) ForPath(ctx context.Context, path string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, size, checksum, file_id, creator, created_at
		FROM exports
		WHERE path = ?
		ORDER BY id DESC
	`, path)
	if err != nil {
		return nil, fmt.Errorf("list exports for %s: %w", path, err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Path, &e.Size, &e.Checksum, &e.FileID, &e.Creator, &created); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("scan export %d: created_at: %w", e.ID, err)
		}
		e.CreatedAt = t
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exports: %w", err)
	}
	return entries, nil
}
