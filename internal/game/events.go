package game

// EventType names a discrete outcome of a tick or a round transition.
type EventType string

const (
	EventSplash      EventType = "splash"
	EventOutOfBounds EventType = "outOfBounds"
	EventWallHit     EventType = "wallHit"
	EventHoled       EventType = "holed"
	EventResting     EventType = "resting"
	EventReset       EventType = "reset"
	EventStroke      EventType = "stroke"
	EventHoleStart   EventType = "holeStart"
	EventHoleSelect  EventType = "holeSelect"
	EventGameOver    EventType = "gameOver"
)

// Event is emitted to the presentation layer alongside the ball state.
type Event struct {
	Type       EventType   `json:"type"`
	Message    string      `json:"message,omitempty"`
	Terrain    TerrainKind `json:"terrain,omitempty"`
	Strokes    int         `json:"strokes,omitempty"`
	Commentary string      `json:"commentary,omitempty"`
	Speed      float64     `json:"speed,omitempty"`
}

const (
	msgSplash      = "Splash! +1 stroke penalty."
	msgOutOfBounds = "Out of bounds! +1 stroke penalty."
	msgResting     = "Ready for next stroke."
	msgReset       = "Ball lost, back to the tee."
	msgTooSoft     = "Too soft! Drag further to hit the ball."
)
