package datastructure

const (
	TURN_SHARP_LEFT    = -3
	TURN_LEFT          = -2
	TURN_SLIGHT_LEFT   = -1
	CONTINUE_ON_STREET = 0
	TURN_SLIGHT_RIGHT  = 1
	TURN_RIGHT         = 2
	TURN_SHARP_RIGHT   = 3
)

func TurnSignName(sign int) string {
	switch sign {
	case TURN_SHARP_LEFT:
		return "sharp_left"
	case TURN_LEFT:
		return "left"
	case TURN_SLIGHT_LEFT:
		return "slight_left"
	case CONTINUE_ON_STREET:
		return "continue"
	case TURN_SLIGHT_RIGHT:
		return "slight_right"
	case TURN_RIGHT:
		return "right"
	case TURN_SHARP_RIGHT:
		return "sharp_right"
	default:
		return "unknown"
	}
}
