package snake

import "strings"

// Key is a frontend-independent directional key.
type Key uint8

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Direction returns the direction a key asks for. ok is false for KeyNone and
// unknown values.
func (k Key) Direction() (d Direction, ok bool) {
	switch k {
	case KeyUp:
		return Up, true
	case KeyDown:
		return Down, true
	case KeyLeft:
		return Left, true
	case KeyRight:
		return Right, true
	default:
		return 0, false
	}
}

// KeyFor returns the key that asks for d.
func KeyFor(d Direction) Key {
	switch d {
	case Up:
		return KeyUp
	case Down:
		return KeyDown
	case Left:
		return KeyLeft
	case Right:
		return KeyRight
	default:
		return KeyNone
	}
}

func (k Key) String() string {
	if d, ok := k.Direction(); ok {
		return d.String()
	}
	return "NONE"
}

// ParseKey maps a key name as reported by browsers ("ArrowUp") or typed by
// hand ("up", "w") to a Key. Unrecognized names yield KeyNone.
func ParseKey(name string) Key {
	switch strings.ToLower(name) {
	case "arrowup", "up", "w":
		return KeyUp
	case "arrowdown", "down", "s":
		return KeyDown
	case "arrowleft", "left", "a":
		return KeyLeft
	case "arrowright", "right", "d":
		return KeyRight
	default:
		return KeyNone
	}
}

// OnKey returns the pending direction after key is pressed while the snake
// travels in current. Reversals and unknown keys leave pending unchanged,
// reported by accepted=false.
func OnKey(key Key, current, pending Direction) (next Direction, accepted bool) {
	d, ok := key.Direction()
	if !ok || d == current.Opposite() {
		return pending, false
	}
	return d, true
}
