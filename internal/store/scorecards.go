// Package store persists finished rounds to Postgres.
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/minigolf/internal/game"
	"github.com/playmatatu/minigolf/internal/logging"
	"github.com/playmatatu/minigolf/internal/models"
)

// Scorecards writes and reads scorecards and their hole rows.
type Scorecards struct {
	db *sqlx.DB
}

func NewScorecards(db *sqlx.DB) *Scorecards {
	return &Scorecards{db: db}
}

// SaveRound stores a summary and its holes in one transaction.
func (s *Scorecards) SaveRound(ctx context.Context, r game.RoundSummary) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin scorecard tx: %w", err)
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO scorecards (session_id, mode, course_fingerprint, total_strokes, total_par, final_score, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id`,
		r.SessionID, string(r.Mode), r.Fingerprint, r.TotalStrokes, r.TotalPar, r.Final).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert scorecard: %w", err)
	}

	for _, h := range r.Holes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO hole_results (scorecard_id, hole_index, par, strokes, penalties, commentary)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, h.Index, h.Par, h.Strokes, h.Penalties, h.Commentary); err != nil {
			return 0, fmt.Errorf("insert hole result %d: %w", h.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit scorecard: %w", err)
	}
	logging.S().Infof("[DB] scorecard %d saved session=%s strokes=%d par=%d", id, r.SessionID, r.TotalStrokes, r.TotalPar)
	return id, nil
}

// Best returns the lowest rounds relative to par, optionally for one mode and
// course fingerprint, with their hole rows.
func (s *Scorecards) Best(ctx context.Context, mode, fingerprint string, limit int) ([]models.Scorecard, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	cards := []models.Scorecard{}
	err := s.db.SelectContext(ctx, &cards,
		`SELECT id, session_id, mode, course_fingerprint, total_strokes, total_par, final_score, created_at
		 FROM scorecards
		 WHERE ($1 = '' OR mode = $1) AND ($2 = '' OR course_fingerprint = $2)
		 ORDER BY total_strokes - total_par ASC, created_at ASC
		 LIMIT $3`, mode, fingerprint, limit)
	if err != nil {
		return nil, fmt.Errorf("select scorecards: %w", err)
	}
	if len(cards) == 0 {
		return cards, nil
	}

	ids := make([]int, len(cards))
	byID := make(map[int]int, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
		byID[c.ID] = i
	}
	query, args, err := sqlx.In(
		`SELECT id, scorecard_id, hole_index, par, strokes, penalties, commentary
		 FROM hole_results WHERE scorecard_id IN (?) ORDER BY scorecard_id, id`, ids)
	if err != nil {
		return nil, err
	}
	var holes []models.HoleResult
	if err := s.db.SelectContext(ctx, &holes, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select hole results: %w", err)
	}
	for _, h := range holes {
		i := byID[h.ScorecardID]
		cards[i].Holes = append(cards[i].Holes, h)
	}
	return cards, nil
}
