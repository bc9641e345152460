// Package input defines the backend-independent input events consumed by
// camera controllers and the viewer loop.
package input

// EventType identifies the kind of an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventScroll
)

// Key is a physical key, independent of the windowing backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEscape
	KeyF1
	KeyF12
)

// Button is a mouse button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool

	Width  int
	Height int

	MouseX int
	MouseY int
	DeltaX int
	DeltaY int
	Button Button

	ScrollX float32
	ScrollY float32
}

// Pressed reports whether any event in events is a fresh press of key.
func Pressed(events []Event, key Key) bool {
	for _, e := range events {
		if e.Type == EventKeyDown && e.Key == key && !e.Repeat {
			return true
		}
	}
	return false
}
