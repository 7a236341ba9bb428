package players

import (
	"errors"
	"fmt"
	"strings"
)

// Position is a player's primary court responsibility.
type Position string

const (
	PointGuard    Position = "PG"
	ShootingGuard Position = "SG"
	SmallForward  Position = "SF"
	PowerForward  Position = "PF"
	Center        Position = "C"
)

// Positions lists every position in canonical order (PG through C).
var Positions = []Position{PointGuard, ShootingGuard, SmallForward, PowerForward, Center}

var (
	// ErrUnknownPosition is returned when a position code is not one of PG/SG/SF/PF/C.
	ErrUnknownPosition = errors.New("unknown position")
	// ErrArchetypePosition is returned when an archetype belongs to a different position than the player.
	ErrArchetypePosition = errors.New("archetype does not match player position")
)

// ParsePosition maps a position code (case-insensitive) to a Position.
func ParsePosition(raw string) (Position, error) {
	pos := Position(strings.ToUpper(strings.TrimSpace(raw)))
	for _, p := range Positions {
		if p == pos {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPosition, raw)
}

// Attribute names a single rating on the 0-100 scale.
type Attribute string

const (
	Shooting     Attribute = "shooting"
	ThreePoint   Attribute = "threePoint"
	Defense      Attribute = "defense"
	Speed        Attribute = "speed"
	Stamina      Attribute = "stamina"
	Passing      Attribute = "passing"
	Rebounding   Attribute = "rebounding"
	BallHandling Attribute = "ballHandling"
	Blocks       Attribute = "blocks"
	Steals       Attribute = "steals"
)

const (
	MinRating = 0
	MaxRating = 100
)

// Attributes are a player's ability ratings. They are immutable during a game.
type Attributes struct {
	Shooting     int `json:"shooting"`
	ThreePoint   int `json:"threePoint"`
	Defense      int `json:"defense"`
	Speed        int `json:"speed"`
	Stamina      int `json:"stamina"`
	Passing      int `json:"passing"`
	Rebounding   int `json:"rebounding"`
	BallHandling int `json:"ballHandling"`
	Blocks       int `json:"blocks"`
	Steals       int `json:"steals"`
}

// ClampRating bounds a rating to [0,100].
func ClampRating(v int) int {
	if v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}

// Clamp returns a copy with every rating bounded to [0,100].
func (a Attributes) Clamp() Attributes {
	return Attributes{
		Shooting:     ClampRating(a.Shooting),
		ThreePoint:   ClampRating(a.ThreePoint),
		Defense:      ClampRating(a.Defense),
		Speed:        ClampRating(a.Speed),
		Stamina:      ClampRating(a.Stamina),
		Passing:      ClampRating(a.Passing),
		Rebounding:   ClampRating(a.Rebounding),
		BallHandling: ClampRating(a.BallHandling),
		Blocks:       ClampRating(a.Blocks),
		Steals:       ClampRating(a.Steals),
	}
}

// Value returns the rating for the named attribute, or 0 for an unknown name.
func (a Attributes) Value(attr Attribute) int {
	switch attr {
	case Shooting:
		return a.Shooting
	case ThreePoint:
		return a.ThreePoint
	case Defense:
		return a.Defense
	case Speed:
		return a.Speed
	case Stamina:
		return a.Stamina
	case Passing:
		return a.Passing
	case Rebounding:
		return a.Rebounding
	case BallHandling:
		return a.BallHandling
	case Blocks:
		return a.Blocks
	case Steals:
		return a.Steals
	default:
		return 0
	}
}

// Player is a rostered player with ratings and an optional role archetype.
type Player struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	TeamID       string     `json:"teamId"`
	Position     Position   `json:"position"`
	HeightInches int        `json:"heightInches"`
	Attributes   Attributes `json:"attributes"`
	Archetype    string     `json:"archetype,omitempty"`
}

// FullName joins first and last name.
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Overall is the plain average of all ten ratings, used to order rotations.
func (p Player) Overall() float64 {
	a := p.Attributes
	sum := a.Shooting + a.ThreePoint + a.Defense + a.Speed + a.Stamina +
		a.Passing + a.Rebounding + a.BallHandling + a.Blocks + a.Steals
	return float64(sum) / 10
}

// AssignArchetype sets the role archetype after checking it belongs to the player's position.
func (p *Player) AssignArchetype(id string, archetypePosition Position) error {
	if archetypePosition != p.Position {
		return fmt.Errorf("%w: %s is a %s archetype, player %s plays %s", ErrArchetypePosition, id, archetypePosition, p.ID, p.Position)
	}
	p.Archetype = id
	return nil
}

// ChangePosition moves the player and clears any archetype chosen for the old position.
func (p *Player) ChangePosition(pos Position) {
	if pos == p.Position {
		return
	}
	p.Position = pos
	p.Archetype = ""
}
