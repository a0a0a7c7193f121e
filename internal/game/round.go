package game

import (
	"errors"
	"fmt"
)

var (
	ErrGameOver       = errors.New("round is over")
	ErrHoleOutOfRange = errors.New("hole index out of range")
	ErrWrongMode      = errors.New("operation not available in this mode")
	ErrNoActiveHole   = errors.New("no hole in play")
)

// Mode is chosen by the entry point that started the round.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeFreePlay Mode = "free-play"
)

// ParseMode validates a mode name. Empty means campaign.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeCampaign:
		return ModeCampaign, nil
	case ModeFreePlay, "freeplay", "free_play":
		return ModeFreePlay, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// RoundStatus is where the round sits between holes.
type RoundStatus string

const (
	StatusPlaying    RoundStatus = "PLAYING"
	StatusHoled      RoundStatus = "HOLED"
	StatusHoleSelect RoundStatus = "HOLE_SELECT"
	StatusGameOver   RoundStatus = "GAME_OVER"
)

// RoundState is the score card in progress.
type RoundState struct {
	CurrentHoleIndex  int         `json:"current_hole_index"`
	StrokesThisHole   int         `json:"strokes_this_hole"`
	PenaltiesThisHole int         `json:"penalties_this_hole"`
	TotalStrokes      int         `json:"total_strokes"`
	TotalPar          int         `json:"total_par"`
	Mode              Mode        `json:"mode"`
	Status            RoundStatus `json:"status"`
}

// HoleResult is one finished hole.
type HoleResult struct {
	Index      int    `json:"index"`
	Par        int    `json:"par"`
	Strokes    int    `json:"strokes"`
	Penalties  int    `json:"penalties"`
	Commentary string `json:"commentary"`
}

// ScoreFeed is what the score display shows after every stroke and transition.
type ScoreFeed struct {
	HoleNumber   int    `json:"hole_number"`
	Par          int    `json:"par"`
	Strokes      int    `json:"strokes"`
	TotalPar     int    `json:"total_par"`
	TotalStrokes int    `json:"total_strokes"`
	Relative     string `json:"relative"`
}

// Round sequences holes and keeps score.
type Round struct {
	State   RoundState   `json:"state"`
	Results []HoleResult `json:"results"`

	pars []int
	par  int
}

// NewRound starts a round over holes with the given pars.
func NewRound(mode Mode, pars []int) *Round {
	return &Round{
		State: RoundState{Mode: mode, Status: StatusHoleSelect},
		pars:  pars,
	}
}

// HoleCount is the number of holes on the card.
func (r *Round) HoleCount() int {
	return len(r.pars)
}

// StartHole resets the per-hole counters.
func (r *Round) StartHole(index int) error {
	if index < 0 || index >= len(r.pars) {
		return ErrHoleOutOfRange
	}
	r.State.CurrentHoleIndex = index
	r.State.StrokesThisHole = 0
	r.State.PenaltiesThisHole = 0
	r.State.Status = StatusPlaying
	r.par = r.pars[index]
	return nil
}

// Reset clears totals and results, keeping the mode.
func (r *Round) Reset() {
	r.State = RoundState{Mode: r.State.Mode, Status: StatusHoleSelect}
	r.Results = nil
	r.par = 0
}

// AddStroke counts one accepted strike on both counters.
func (r *Round) AddStroke() {
	r.State.StrokesThisHole++
	r.State.TotalStrokes++
}

// AddPenalty adds hazard strokes on both counters.
func (r *Round) AddPenalty(n int) {
	r.State.StrokesThisHole += n
	r.State.PenaltiesThisHole += n
	r.State.TotalStrokes += n
}

// CompleteHole records the current hole. Strokes are already in the total;
// only par is added.
func (r *Round) CompleteHole() HoleResult {
	res := HoleResult{
		Index:      r.State.CurrentHoleIndex,
		Par:        r.par,
		Strokes:    r.State.StrokesThisHole,
		Penalties:  r.State.PenaltiesThisHole,
		Commentary: Commentary(r.State.StrokesThisHole, r.par),
	}
	r.State.TotalPar += r.par
	r.State.Status = StatusHoled
	r.Results = append(r.Results, res)
	return res
}

// Finish marks the round as over.
func (r *Round) Finish() {
	r.State.Status = StatusGameOver
}

// ToHoleSelect parks the round at hole selection.
func (r *Round) ToHoleSelect() {
	r.State.Status = StatusHoleSelect
}

// Feed builds the score display data. Relative only counts finished holes,
// so the hole in play does not skew it.
func (r *Round) Feed() ScoreFeed {
	completed := r.State.TotalStrokes
	if r.State.Status == StatusPlaying {
		completed -= r.State.StrokesThisHole
	}
	return ScoreFeed{
		HoleNumber:   r.State.CurrentHoleIndex + 1,
		Par:          r.par,
		Strokes:      r.State.StrokesThisHole,
		TotalPar:     r.State.TotalPar,
		TotalStrokes: r.State.TotalStrokes,
		Relative:     FinalScore(completed, r.State.TotalPar),
	}
}

var underParNames = map[int]string{
	1: "Birdie",
	2: "Eagle",
	3: "Albatross",
	4: "Condor",
}

// Commentary names a finished hole.
func Commentary(strokes, par int) string {
	if strokes == 1 {
		return "Hole in one!"
	}
	diff := strokes - par
	switch {
	case diff == 0:
		return "Par"
	case diff < 0:
		if name, ok := underParNames[-diff]; ok {
			return name
		}
		return fmt.Sprintf("%d under par", -diff)
	default:
		return fmt.Sprintf("+%d over par", diff)
	}
}

// FinalScore formats strokes relative to par: "Par", "+k" or "-k".
func FinalScore(totalStrokes, totalPar int) string {
	diff := totalStrokes - totalPar
	switch {
	case diff == 0:
		return "Par"
	case diff > 0:
		return fmt.Sprintf("+%d", diff)
	default:
		return fmt.Sprintf("%d", diff)
	}
}
