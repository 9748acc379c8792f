package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/solevolog/solevolog/internal/engine"
)

// SessionSummary describes one persisted spread.
type SessionSummary struct {
	SessionID string
	Question  string
	Cards     int
	CreatedAt time.Time
}

// InsertSessionCards writes the rows of one spread in a single
// transaction. If any row fails, none are kept.
func (s *Store) InsertSessionCards(ctx context.Context, sessionID string, rows []engine.SessionCard) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO session_cards (
			session_id, card_id, position_index, position_meaning, is_reversed, created_at
		) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	createdAt := s.now().UTC().Unix()
	for _, r := range rows {
		if r.SessionID != sessionID {
			return fmt.Errorf("row for session %q in batch for %q", r.SessionID, sessionID)
		}
		if _, err := stmt.ExecContext(ctx,
			sessionID, r.CardID, r.PositionIndex, r.PositionMeaning, r.IsReversed, createdAt,
		); err != nil {
			return fmt.Errorf("insert session card %s at %d: %w", r.CardID, r.PositionIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session cards: %w", err)
	}
	s.logger.Debug("Session cards saved",
		zap.String("session_id", sessionID),
		zap.Int("cards", len(rows)))
	return nil
}

// ListSessionCards returns the spread saved for sessionID in position order.
func (s *Store) ListSessionCards(ctx context.Context, sessionID string) ([]engine.SessionCard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, card_id, position_index, position_meaning, is_reversed
		FROM session_cards
		WHERE session_id = ?
		ORDER BY position_index, id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session cards: %w", err)
	}
	defer rows.Close()

	var out []engine.SessionCard
	for rows.Next() {
		var r engine.SessionCard
		if err := rows.Scan(&r.SessionID, &r.CardID, &r.PositionIndex, &r.PositionMeaning, &r.IsReversed); err != nil {
			return nil, fmt.Errorf("scan session card: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read session cards: %w", err)
	}
	return out, nil
}

// ListSessions returns one summary per session that has saved cards,
// newest first.
func (s *Store) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sc.session_id, COALESCE(MAX(q.question), ''), COUNT(*), MIN(sc.created_at)
		FROM session_cards sc
		LEFT JOIN sessions q ON q.session_id = sc.session_id
		GROUP BY sc.session_id
		ORDER BY MIN(sc.created_at) DESC, sc.session_id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var (
			sum     SessionSummary
			created int64
		)
		if err := rows.Scan(&sum.SessionID, &sum.Question, &sum.Cards, &created); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sum.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	return out, nil
}

// SaveQuestion records the question asked for a session, replacing any
// earlier one.
func (s *Store) SaveQuestion(ctx context.Context, sessionID, question string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (session_id, question, created_at) VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET question = excluded.question`,
		sessionID, question, s.now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("save question for session %s: %w", sessionID, err)
	}
	return nil
}

// Question returns the question recorded for a session, or "" if none was.
func (s *Store) Question(ctx context.Context, sessionID string) (string, error) {
	var q string
	err := s.db.QueryRowContext(ctx,
		"SELECT question FROM sessions WHERE session_id = ?", sessionID).Scan(&q)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query question for session %s: %w", sessionID, err)
	}
	return q, nil
}
