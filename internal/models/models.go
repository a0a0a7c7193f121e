package models

import "time"

// Scorecard is one finished round (campaign) or hole (free play).
type Scorecard struct {
	ID                int       `db:"id" json:"id"`
	SessionID         string    `db:"session_id" json:"session_id"`
	Mode              string    `db:"mode" json:"mode"`
	CourseFingerprint string    `db:"course_fingerprint" json:"course_fingerprint"`
	TotalStrokes      int       `db:"total_strokes" json:"total_strokes"`
	TotalPar          int       `db:"total_par" json:"total_par"`
	FinalScore        string    `db:"final_score" json:"final_score"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`

	Holes []HoleResult `db:"-" json:"holes,omitempty"`
}

// HoleResult is one row of a scorecard.
type HoleResult struct {
	ID          int    `db:"id" json:"id"`
	ScorecardID int    `db:"scorecard_id" json:"scorecard_id"`
	HoleIndex   int    `db:"hole_index" json:"hole_index"`
	Par         int    `db:"par" json:"par"`
	Strokes     int    `db:"strokes" json:"strokes"`
	Penalties   int    `db:"penalties" json:"penalties"`
	Commentary  string `db:"commentary" json:"commentary"`
}
