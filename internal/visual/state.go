package visual

import "fmt"

type State int

const (
	IDLE State = iota + 1
	SEARCHING
	FOUND
	NO_PATH
	CANCELLED
)

func (s State) Name() string {
	switch s {
	case IDLE:
		return "IDLE"
	case SEARCHING:
		return "SEARCHING"
	case FOUND:
		return "FOUND"
	case NO_PATH:
		return "NO_PATH"
	case CANCELLED:
		return "CANCELLED"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}
