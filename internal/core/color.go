package core

// Pixel colors are packed as 0x00RRGGBB: red in bits 16-23, green in
// bits 8-15, blue in bits 0-7. The top byte is ignored.

// Predefined colors used by overlays and the built-in simulations.
const (
	ColorBlack uint32 = 0x000000
	ColorWhite uint32 = 0xFFFFFF
	ColorRed   uint32 = 0xFF0000
	ColorGreen uint32 = 0x00FF00
	ColorBlue  uint32 = 0x0000FF
	ColorGray  uint32 = 0x808080
)

// RGB packs three channels into a pixel color.
func RGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// SplitRGB unpacks a pixel color into its channels, ignoring alpha.
func SplitRGB(c uint32) (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Lerp blends two colors channel-wise. t is clamped to [0, 1].
func Lerp(a, b uint32, t float64) uint32 {
	t = ClampF(t, 0, 1)
	ar, ag, ab := SplitRGB(a)
	br, bg, bb := SplitRGB(b)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return RGB(mix(ar, br), mix(ag, bg), mix(ab, bb))
}
