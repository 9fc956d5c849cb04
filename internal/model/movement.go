package model

// MoveType identifies a movement mode with its own speed rate.
type MoveType uint8

const (
	MoveWalk MoveType = iota
	MoveRun
	MoveRunBack
	MoveSwim
	MoveFlight
)

// MoveTypes lists every movement mode, in declaration order.
var MoveTypes = []MoveType{MoveWalk, MoveRun, MoveRunBack, MoveSwim, MoveFlight}

func (t MoveType) String() string {
	switch t {
	case MoveWalk:
		return "walk"
	case MoveRun:
		return "run"
	case MoveRunBack:
		return "run_back"
	case MoveSwim:
		return "swim"
	case MoveFlight:
		return "flight"
	default:
		return "unknown"
	}
}

// MovementDefinition holds base speeds (units per second) per movement mode.
type MovementDefinition struct {
	Walk    float32 `yaml:"walk"`
	Run     float32 `yaml:"run"`
	RunBack float32 `yaml:"run_back"`
	Swim    float32 `yaml:"swim"`
	Flight  float32 `yaml:"flight"`
}

// DefaultMovement returns the stock humanoid speeds.
func DefaultMovement() MovementDefinition {
	return MovementDefinition{
		Walk:    2.5,
		Run:     7.0,
		RunBack: 4.5,
		Swim:    4.7,
		Flight:  7.0,
	}
}

// BaseSpeed returns the base speed for t (0 for unknown modes).
func (d MovementDefinition) BaseSpeed(t MoveType) float32 {
	switch t {
	case MoveWalk:
		return d.Walk
	case MoveRun:
		return d.Run
	case MoveRunBack:
		return d.RunBack
	case MoveSwim:
		return d.Swim
	case MoveFlight:
		return d.Flight
	default:
		return 0
	}
}
