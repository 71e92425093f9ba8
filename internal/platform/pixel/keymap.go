package pixel

import "github.com/vovakirdan/lys/internal/core"

// Native key codes follow GLFW numbering, as reported by raylib.
const (
	NativeKeySpace     int32 = 32
	NativeKeyA         int32 = 65
	NativeKeyZ         int32 = 90
	NativeKeyEscape    int32 = 256
	NativeKeyEnter     int32 = 257
	NativeKeyTab       int32 = 258
	NativeKeyBackspace int32 = 259
	NativeKeyInsert    int32 = 260
	NativeKeyDelete    int32 = 261
	NativeKeyRight     int32 = 262
	NativeKeyLeft      int32 = 263
	NativeKeyDown      int32 = 264
	NativeKeyUp        int32 = 265
	NativeKeyPageUp    int32 = 266
	NativeKeyPageDown  int32 = 267
	NativeKeyHome      int32 = 268
	NativeKeyEnd       int32 = 269
	NativeKeyF1        int32 = 290
	NativeKeyF12       int32 = 301
	NativeKeyLShift    int32 = 340
	NativeKeyLCtrl     int32 = 341
	NativeKeyLAlt      int32 = 342
	NativeKeyRShift    int32 = 344
	NativeKeyRCtrl     int32 = 345
	NativeKeyRAlt      int32 = 346
)

var namedKeys = map[int32]core.Key{
	NativeKeySpace:     core.KeySpace,
	NativeKeyEnter:     core.KeyReturn,
	NativeKeyTab:       core.KeyTab,
	NativeKeyBackspace: core.KeyBackspace,
	NativeKeyInsert:    core.KeyInsert,
	NativeKeyDelete:    core.KeyDelete,
	NativeKeyRight:     core.KeyRight,
	NativeKeyLeft:      core.KeyLeft,
	NativeKeyDown:      core.KeyDown,
	NativeKeyUp:        core.KeyUp,
	NativeKeyPageUp:    core.KeyPageUp,
	NativeKeyPageDown:  core.KeyPageDown,
	NativeKeyHome:      core.KeyHome,
	NativeKeyEnd:       core.KeyEnd,
	NativeKeyLShift:    core.KeyLShift,
	NativeKeyLCtrl:     core.KeyLCtrl,
	NativeKeyLAlt:      core.KeyLAlt,
	NativeKeyRShift:    core.KeyRShift,
	NativeKeyRCtrl:     core.KeyRCtrl,
	NativeKeyRAlt:      core.KeyRAlt,
	NativeKeyEscape:    core.KeyEscape,
}

// TranslateKey maps a native key code to a logical key, with ok false
// for codes outside the table.
func TranslateKey(code int32) (core.Key, bool) {
	switch {
	case code >= NativeKeyA && code <= NativeKeyZ:
		return core.Letter(byte('a' + code - NativeKeyA)), true
	case code >= NativeKeyF1 && code <= NativeKeyF12:
		return core.FunctionKey(int(code-NativeKeyF1) + 1), true
	case code > NativeKeySpace && code < NativeKeyA, code >= 91 && code <= 96:
		// Digits and punctuation share ASCII codes in both spaces.
		return core.Key(code), true
	}
	k, ok := namedKeys[code]
	return k, ok
}
