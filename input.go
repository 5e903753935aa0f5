package tilekit

import "github.com/hajimehoshi/ebiten/v2"

// PointerEventType distinguishes button transitions seen by PointerInput.
type PointerEventType uint8

const (
	PointerDown PointerEventType = iota // a button went down this frame
	PointerUp                           // a button was released this frame
)

// PointerEvent is one button transition observed during PointerInput.Update.
type PointerEvent struct {
	Type     PointerEventType
	Button   MouseButton
	Position ScreenPosition // pointer position at the transition
	Start    ScreenPosition // where the button went down (PointerUp only)
}

// CellEvent reports an interaction with one grid cell.
type CellEvent struct {
	Type     EventType
	Coords   ScreenPosition // (column, row) of the cell
	Position ScreenPosition // screen position of the pointer
	Button   MouseButton
}

// CellEventSink receives cell events from grids. The ecs submodule provides
// a Donburi-backed implementation.
type CellEventSink interface {
	EmitCellEvent(event CellEvent)
}

// syntheticPointerEvent is a queued injected pointer state.
type syntheticPointerEvent struct {
	pos     ScreenPosition
	pressed bool
	button  MouseButton
}

type buttonState [mouseButtonCount]bool

// PointerInput tracks the mouse between frames and turns button state into
// PointerEvents. Injected events take priority over the real mouse: while
// the inject queue is non-empty, one queued event is consumed per Update and
// the mouse is not polled.
type PointerInput struct {
	position ScreenPosition
	down     buttonState
	start    [mouseButtonCount]ScreenPosition
	events   []PointerEvent

	injectQueue []syntheticPointerEvent
	poll        func() (ScreenPosition, buttonState)
}

// NewPointerInput returns a PointerInput that polls Ebitengine's mouse.
func NewPointerInput() *PointerInput {
	return &PointerInput{poll: pollMouse}
}

func pollMouse() (ScreenPosition, buttonState) {
	mx, my := ebiten.CursorPosition()
	var st buttonState
	st[MouseButtonLeft] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	st[MouseButtonRight] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	st[MouseButtonMiddle] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	return ScreenPosition{mx, my}, st
}

// Update advances one frame: consumes one injected event or polls the mouse,
// then records the button transitions.
func (in *PointerInput) Update() {
	in.events = in.events[:0]

	var pos ScreenPosition
	var st buttonState
	if len(in.injectQueue) > 0 {
		evt := in.injectQueue[0]
		copy(in.injectQueue, in.injectQueue[1:])
		in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]
		pos = evt.pos
		st = in.down
		st[evt.button] = evt.pressed
	} else if in.poll != nil {
		pos, st = in.poll()
	} else {
		return
	}

	for b := MouseButton(0); b < mouseButtonCount; b++ {
		switch {
		case st[b] && !in.down[b]:
			in.start[b] = pos
			in.events = append(in.events, PointerEvent{Type: PointerDown, Button: b, Position: pos, Start: pos})
		case !st[b] && in.down[b]:
			in.events = append(in.events, PointerEvent{Type: PointerUp, Button: b, Position: pos, Start: in.start[b]})
		}
	}
	in.down = st
	in.position = pos
}

// Position returns the pointer position seen by the last Update.
func (in *PointerInput) Position() ScreenPosition {
	return in.position
}

// IsDown reports whether button was held at the last Update.
func (in *PointerInput) IsDown(button MouseButton) bool {
	return button < mouseButtonCount && in.down[button]
}

// Events returns the transitions recorded by the last Update. The slice is
// reused on the next Update.
func (in *PointerInput) Events() []PointerEvent {
	return in.events
}

// Pending returns the number of injected events not yet consumed.
func (in *PointerInput) Pending() int {
	return len(in.injectQueue)
}

// InjectPress queues a left-button press at the given screen position. It is
// consumed on the next Update.
func (in *PointerInput) InjectPress(x, y int) {
	in.injectButton(x, y, MouseButtonLeft, true)
}

// InjectRelease queues a left-button release at the given screen position.
func (in *PointerInput) InjectRelease(x, y int) {
	in.injectButton(x, y, MouseButtonLeft, false)
}

// InjectClick queues a press followed by a release at the same position.
// Consumes two frames.
func (in *PointerInput) InjectClick(x, y int) {
	in.InjectPress(x, y)
	in.InjectRelease(x, y)
}

// InjectButton queues a press or release of any button.
func (in *PointerInput) InjectButton(x, y int, button MouseButton, pressed bool) {
	in.injectButton(x, y, button, pressed)
}

func (in *PointerInput) injectButton(x, y int, button MouseButton, pressed bool) {
	if button >= mouseButtonCount {
		return
	}
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{
		pos:     ScreenPosition{x, y},
		pressed: pressed,
		button:  button,
	})
}
