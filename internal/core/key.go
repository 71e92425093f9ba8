package core

import "fmt"

// Key is a logical key code. Codes follow the SDL keycode space so that
// simulations written against SDL keysyms keep working: printable keys use
// their lowercase ASCII value and special keys carry the 0x40000000 scancode
// mask.
type Key int32

const (
	KeyNone      Key = 0
	KeyBackspace Key = 0x08
	KeyTab       Key = 0x09
	KeyReturn    Key = 0x0D
	KeyEscape    Key = 0x1B
	KeySpace     Key = 0x20
	KeyDelete    Key = 0x7F

	KeyA Key = 0x61
	KeyZ Key = 0x7A

	KeyF1  Key = 0x4000003A
	KeyF2  Key = 0x4000003B
	KeyF3  Key = 0x4000003C
	KeyF4  Key = 0x4000003D
	KeyF12 Key = 0x40000045

	KeyInsert   Key = 0x40000049
	KeyHome     Key = 0x4000004A
	KeyPageUp   Key = 0x4000004B
	KeyEnd      Key = 0x4000004D
	KeyPageDown Key = 0x4000004E
	KeyRight    Key = 0x4000004F
	KeyLeft     Key = 0x40000050
	KeyDown     Key = 0x40000051
	KeyUp       Key = 0x40000052

	KeyLCtrl  Key = 0x400000E0
	KeyLShift Key = 0x400000E1
	KeyLAlt   Key = 0x400000E2
	KeyRCtrl  Key = 0x400000E4
	KeyRShift Key = 0x400000E5
	KeyRAlt   Key = 0x400000E6
)

// Letter returns the key for a lowercase ASCII letter.
func Letter(c byte) Key {
	return KeyA + Key(c-'a')
}

// FunctionKey returns the key for F1..F12. n is 1-based.
func FunctionKey(n int) Key {
	return KeyF1 + Key(n-1)
}

var keyNames = map[Key]string{
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyReturn:    "enter",
	KeyEscape:    "esc",
	KeySpace:     "space",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyHome:      "home",
	KeyPageUp:    "pgup",
	KeyEnd:       "end",
	KeyPageDown:  "pgdown",
	KeyRight:     "right",
	KeyLeft:      "left",
	KeyDown:      "down",
	KeyUp:        "up",
	KeyLCtrl:     "lctrl",
	KeyLShift:    "lshift",
	KeyLAlt:      "lalt",
	KeyRCtrl:     "rctrl",
	KeyRShift:    "rshift",
	KeyRAlt:      "ralt",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= KeyF1 && k <= KeyF12 {
		return fmt.Sprintf("f%d", k-KeyF1+1)
	}
	if k > KeySpace && k < KeyDelete {
		return string(rune(k))
	}
	return fmt.Sprintf("key(%#x)", int32(k))
}

// ButtonMask is a set of pointer buttons, bit n-1 for button n.
type ButtonMask uint32

// Pointer buttons in SDL numbering.
const (
	ButtonLeft   = 1
	ButtonMiddle = 2
	ButtonRight  = 3
)

// ButtonBit returns the mask bit for a 1-based button number.
func ButtonBit(button int) ButtonMask {
	if button <= 0 {
		return 0
	}
	return 1 << (button - 1)
}

// Has reports whether the given 1-based button is set.
func (m ButtonMask) Has(button int) bool {
	return m&ButtonBit(button) != 0
}
