package core

// EventKind tags a logical input event.
type EventKind uint8

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventPointerMove
	EventPointerButton
	EventWheel
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventKeyDown:
		return "KeyDown"
	case EventKeyUp:
		return "KeyUp"
	case EventPointerMove:
		return "PointerMove"
	case EventPointerButton:
		return "PointerButton"
	case EventWheel:
		return "Wheel"
	default:
		return "Unknown"
	}
}

// Event is a logical input event produced by an input translator.
// Only the fields relevant to Kind are meaningful.
type Event struct {
	Kind    EventKind
	Key     Key
	Buttons ButtonMask
	X, Y    int
	DX, DY  int
}

// KeyDownEvent builds a key-down event.
func KeyDownEvent(k Key) Event {
	return Event{Kind: EventKeyDown, Key: k}
}

// KeyUpEvent builds a key-up event.
func KeyUpEvent(k Key) Event {
	return Event{Kind: EventKeyUp, Key: k}
}

// Lifecycle is a signal delivered synchronously to the host handler.
type Lifecycle uint8

const (
	LifecycleLoopStart Lifecycle = iota
	LifecycleLoopIteration
	LifecycleLoopEnd
	LifecycleGeometryChanged
	LifecycleCustom
)

// String returns a human-readable name for the lifecycle signal.
func (l Lifecycle) String() string {
	switch l {
	case LifecycleLoopStart:
		return "LoopStart"
	case LifecycleLoopIteration:
		return "LoopIteration"
	case LifecycleLoopEnd:
		return "LoopEnd"
	case LifecycleGeometryChanged:
		return "GeometryChanged"
	case LifecycleCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}
