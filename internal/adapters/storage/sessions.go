package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// sessionLog implements ports.SessionLog over the focus_sessions table.
type sessionLog struct {
	db *sql.DB
}

var _ ports.SessionLog = (*sessionLog)(nil)

// Append stores a completed focus session.
func (l *sessionLog) Append(ctx context.Context, session *domain.FocusSession) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO focus_sessions (id, started_at, ended_at, seconds, git_branch, git_commit)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.StartedAt.UTC().Format(time.RFC3339),
		session.EndedAt.UTC().Format(time.RFC3339),
		session.Seconds,
		session.GitBranch,
		session.GitCommit,
	)
	if err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return nil
}

// Recent returns up to limit sessions, newest first.
func (l *sessionLog) Recent(ctx context.Context, limit int) ([]*domain.FocusSession, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, seconds, git_branch, git_commit
		 FROM focus_sessions ORDER BY ended_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.FocusSession
	for rows.Next() {
		var (
			s                  domain.FocusSession
			startedAt, endedAt string
			branch, commit     sql.NullString
		)
		if err := rows.Scan(&s.ID, &startedAt, &endedAt, &s.Seconds, &branch, &commit); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		s.EndedAt, _ = time.Parse(time.RFC3339, endedAt)
		s.GitBranch = branch.String
		s.GitCommit = commit.String
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}

// Clear removes all logged sessions.
func (l *sessionLog) Clear(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, `DELETE FROM focus_sessions`)
	return err
}
