package terminal

import (
	"bufio"

	"github.com/charmbracelet/x/ansi"
)

// Pre-allocated truecolor prefixes, each followed by R;G;Bm.
var (
	csiFgRGB = []byte("\x1b[38;2;")
	csiBgRGB = []byte("\x1b[48;2;")
)

const (
	// seqOpen hides the cursor and clears the screen.
	seqOpen = ansi.HideCursor + ansi.EraseEntireScreen + ansi.CursorHomePosition

	// seqFrameEnd resets colors and homes the cursor for the next frame.
	seqFrameEnd = ansi.ResetStyle + ansi.CursorHomePosition

	// seqClose restores default colors and shows the cursor.
	seqClose = ansi.ResetStyle + ansi.ShowCursor + "\r\n"
)

// writeInt writes a non-negative integer without allocating.
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// writeRGB writes a truecolor SGR for a packed 0x00RRGGBB color.
func writeRGB(w *bufio.Writer, prefix []byte, c uint32) {
	w.Write(prefix)
	writeInt(w, int(c>>16&0xFF))
	w.WriteByte(';')
	writeInt(w, int(c>>8&0xFF))
	w.WriteByte(';')
	writeInt(w, int(c&0xFF))
	w.WriteByte('m')
}
