package daily

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLCursor persists rotation cursors in the rotation_cursors table.
type SQLCursor struct{ db *sql.DB }

func NewSQLCursor(db *sql.DB) *SQLCursor { return &SQLCursor{db: db} }

func (s *SQLCursor) Advance(ctx context.Context, sessionID string, n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptyWordList
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var cur int
	err = tx.QueryRowContext(ctx,
		`SELECT next_index FROM rotation_cursors WHERE session_id=?`, sessionID,
	).Scan(&cur)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("read cursor: %w", err)
	}
	cur %= n

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rotation_cursors(session_id, next_index) VALUES(?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			next_index=excluded.next_index,
			last_accessed_at=strftime('%Y-%m-%dT%H:%M:%SZ', 'now')`,
		sessionID, (cur+1)%n,
	)
	if err != nil {
		return 0, fmt.Errorf("write cursor: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return cur, nil
}
