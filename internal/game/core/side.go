package core

import "fmt"

// Side identifies one of the two fleets in a session
type Side int

const (
	SideNone Side = iota
	SidePlayer
	SideOpponent
)

func (s Side) String() string {
	switch s {
	case SideNone:
		return "none"
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Other returns the opposing side. SideNone has no opponent.
func (s Side) Other() Side {
	switch s {
	case SidePlayer:
		return SideOpponent
	case SideOpponent:
		return SidePlayer
	default:
		return SideNone
	}
}
