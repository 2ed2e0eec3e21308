package room

import "fmt"

// State is the phase of the turn state machine.
type State int

const (
	StateIdle     State = iota // no round
	StatePlacing               // local player places the drawn tile
	StateManning               // local player may put a meeple on that tile
	StateWaiting               // a remote player is on turn
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StatePlacing:
		return "PLACING"
	case StateManning:
		return "MANNING"
	case StateWaiting:
		return "WAITING"
	case StateGameOver:
		return "GAME_OVER"
	}
	return fmt.Sprintf("State(%d)", int(s))
}
