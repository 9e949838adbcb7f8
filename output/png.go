package output

import (
	qr "github.com/skip2/go-qrcode"
)

const DefaultPNGSize = 256

type PNGWriter struct {
	size int
}

func NewPNGWriter(size int) *PNGWriter {
	if size <= 0 {
		size = DefaultPNGSize
	}
	return &PNGWriter{size: size}
}

// WriteFile stores the QR code for content as a PNG image at path.
func (w *PNGWriter) WriteFile(content, path string) error {
	return qr.WriteFile(content, qr.Medium, w.size, path)
}
