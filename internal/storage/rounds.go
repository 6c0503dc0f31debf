// internal/storage/rounds.go
//
// Round history: one row per started round, owned either by a user or by an
// anonymous cookie ID. Rows hold counters and the outcome only; the article
// body and reveal state are never stored.

package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Owner identifies who played a round. Exactly one field is set.
type Owner struct {
	UserID      string
	AnonymousID string
}

func (o Owner) clause() (string, any) {
	if o.UserID != "" {
		return `user_id=?`, o.UserID
	}
	return `anonymous_id=?`, o.AnonymousID
}

// Round is one row of the rounds table.
type Round struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Guesses    int    `json:"guesses"`
	Found      int    `json:"found"`
	Total      int    `json:"total"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// Rounds records round history and the derived user stats.
type Rounds struct{ db *sql.DB }

func NewRounds(db *sql.DB) *Rounds { return &Rounds{db: db} }

// Start inserts the row for a new round.
func (s *Rounds) Start(ctx context.Context, id string, owner Owner, status string, total int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	var user, anon any
	if owner.UserID != "" {
		user = owner.UserID
	} else {
		anon = owner.AnonymousID
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO rounds (id, user_id, anonymous_id, status, total, started_at)
	                                 VALUES (?,?,?,?,?,?)`, id, user, anon, status, total, now)
	return err
}

// Progress updates the counters of a round still in play.
func (s *Rounds) Progress(ctx context.Context, id string, owner Owner, guesses, found int) error {
	where, arg := owner.clause()
	_, err := s.db.ExecContext(ctx, `UPDATE rounds SET guesses=?, found=? WHERE id=? AND `+where,
		guesses, found, id, arg)
	return err
}

// Finish records the outcome of a round and, for a signed-in owner, bumps
// their stats in the same transaction. The title is only written here, once
// the round is over.
func (s *Rounds) Finish(ctx context.Context, id string, owner Owner, title, status string, guesses, found int, won bool) error {
	where, arg := owner.clause()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `UPDATE rounds SET title=?, status=?, guesses=?, found=?, finished_at=?
	                                 WHERE id=? AND finished_at IS NULL AND `+where,
		title, status, guesses, found, time.Now().UTC().Format(time.RFC3339), id, arg)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return tx.Commit()
	}
	if owner.UserID != "" {
		if err := bumpStats(ctx, tx, owner.UserID, won); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Claim moves every anonymous round to a user account after sign-in.
func (s *Rounds) Claim(ctx context.Context, anonID, userID string) (int64, error) {
	if anonID == "" || userID == "" {
		return 0, errors.New("storage: claim needs both IDs")
	}
	res, err := s.db.ExecContext(ctx, `UPDATE rounds SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Recent lists a user's latest rounds, newest first.
func (s *Rounds) Recent(ctx context.Context, userID string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, status, guesses, found, total, started_at, COALESCE(finished_at,'')
	                                     FROM rounds WHERE user_id=? ORDER BY started_at DESC, rowid DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Round{}
	for rows.Next() {
		var r Round
		if err := rows.Scan(&r.ID, &r.Title, &r.Status, &r.Guesses, &r.Found, &r.Total, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
