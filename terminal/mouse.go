package terminal

// MouseButton represents mouse button identity
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
)

// MouseAction represents the type of mouse event
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

// ButtonMask is the set of buttons held during a mouse event
type ButtonMask uint8

const (
	ButtonLeft   ButtonMask = 1 << 0
	ButtonRight  ButtonMask = 1 << 1
	ButtonMiddle ButtonMask = 1 << 2
)

// Mask converts a single button identity to its mask bit
func (b MouseButton) Mask() ButtonMask {
	switch b {
	case MouseBtnLeft:
		return ButtonLeft
	case MouseBtnRight:
		return ButtonRight
	case MouseBtnMiddle:
		return ButtonMiddle
	}
	return 0
}

// String returns human-readable button name
func (b MouseButton) String() string {
	switch b {
	case MouseBtnLeft:
		return "Left"
	case MouseBtnMiddle:
		return "Middle"
	case MouseBtnRight:
		return "Right"
	case MouseBtnWheelUp:
		return "WheelUp"
	case MouseBtnWheelDown:
		return "WheelDown"
	default:
		return "None"
	}
}

// String returns human-readable action name
func (a MouseAction) String() string {
	switch a {
	case MouseActionPress:
		return "Press"
	case MouseActionRelease:
		return "Release"
	case MouseActionMove:
		return "Move"
	case MouseActionDrag:
		return "Drag"
	default:
		return "None"
	}
}
