package output

import (
	"bufio"
	"io"

	qr "github.com/skip2/go-qrcode"
)

// TerminalRenderer draws QR codes with block characters. Light modules are
// printed as filled blocks so the code scans on dark terminal themes.
type TerminalRenderer struct {
	out   io.Writer
	small bool
	level qr.RecoveryLevel
}

// NewTerminalRenderer writes to out. With small set, two module rows share a
// single text line using half blocks.
func NewTerminalRenderer(out io.Writer, small bool) *TerminalRenderer {
	return &TerminalRenderer{out: out, small: small, level: qr.Medium}
}

func (r *TerminalRenderer) Render(content string) error {
	code, err := qr.New(content, r.level)
	if err != nil {
		return err
	}
	bitmap := code.Bitmap()

	w := bufio.NewWriter(r.out)
	if r.small {
		writeSmall(w, bitmap)
	} else {
		writeLarge(w, bitmap)
	}
	return w.Flush()
}

func writeLarge(w *bufio.Writer, bitmap [][]bool) {
	for _, row := range bitmap {
		for _, dark := range row {
			if dark {
				w.WriteString("  ")
			} else {
				w.WriteString("██")
			}
		}
		w.WriteByte('\n')
	}
}

func writeSmall(w *bufio.Writer, bitmap [][]bool) {
	for y := 0; y < len(bitmap); y += 2 {
		top := bitmap[y]
		for x := range top {
			// past the last row counts as dark so the bottom edge stays blank
			bottomDark := true
			if y+1 < len(bitmap) {
				bottomDark = bitmap[y+1][x]
			}
			switch {
			case !top[x] && !bottomDark:
				w.WriteString("█")
			case !top[x]:
				w.WriteString("▀")
			case !bottomDark:
				w.WriteString("▄")
			default:
				w.WriteByte(' ')
			}
		}
		w.WriteByte('\n')
	}
}
