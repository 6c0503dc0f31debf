package daily

import (
	"context"
	"database/sql"
)

// Result is one player's finished daily round. A revealed result locks the
// day for the player and is left off the leaderboard.
type Result struct {
	UserID       string `json:"userId"`
	Date         string `json:"date"`
	ArticleIndex int    `json:"articleIndex"`
	Guesses      int    `json:"guesses"`
	ElapsedMs    int    `json:"elapsedMs"`
	Revealed     bool   `json:"revealed"`
}

// LBRow is one leaderboard line.
type LBRow struct {
	UserID    string `json:"userId"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Store reads and writes daily_results.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether a result, won or revealed, exists for the
// player and date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult stores a result; a second result for the same player and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, article_index, guesses, elapsed_ms, revealed)
		 VALUES(?,?,?,?,?,?)`, r.UserID, r.Date, r.ArticleIndex, r.Guesses, r.ElapsedMs, r.Revealed,
	)
	return err
}

// Leaderboard returns the fastest won results for date, fewest guesses
// breaking ties.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, guesses, elapsed_ms
		 FROM daily_results
		 WHERE date=? AND revealed=0
		 ORDER BY elapsed_ms ASC, guesses ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
