package game

// Physics and course constants for the mini-golf engine.
// These MUST match the values the browser client animates with.

const (
	NormalFriction = 0.985
	SandFriction   = 0.88
	RoughFriction  = 0.95

	MinVelocity      = 0.08
	MaxPower         = 18.0
	PowerSensitivity = 12.0
	Gravity          = 0.2

	WaterPenalty       = 1
	OutOfBoundsPenalty = 1

	HoleRadius   = 16.0 // px
	BallRadius   = 10.0 // px
	CaptureSpeed = 2.0  // ball must be slower than this to drop

	WedgeLoft      = 0.5 // vz = actualPower * WedgeLoft
	MinStrikePower = 0.5 // strikes at or below this are discarded

	// wallEpsilon keeps a bounced ball strictly outside the wall box.
	wallEpsilon = 0.01

	DefaultFieldWidth  = 700.0
	DefaultFieldHeight = 450.0
)

// Delays for deferred round transitions, in simulated seconds.
const (
	NextHoleDelay   = 1.5
	HoleSelectDelay = 2.0
)
