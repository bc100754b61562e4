package donation

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultQRSize   = 256
	DefaultQRMargin = 1
)

type QREncoder interface {
	Encode(content string) ([]byte, error)
}

// QRCodeEncoder renders PNG QR codes of a fixed pixel width with a narrow
// quiet zone, sized for inline display next to the copyable link.
type QRCodeEncoder struct {
	Size   int
	Margin int
	Level  qrcode.RecoveryLevel
}

func NewQRCodeEncoder() *QRCodeEncoder {
	return &QRCodeEncoder{
		Size:   DefaultQRSize,
		Margin: DefaultQRMargin,
		Level:  qrcode.Medium,
	}
}

func (e *QRCodeEncoder) Encode(content string) ([]byte, error) {
	q, err := qrcode.New(content, e.Level)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	// the library's border is four modules; the margin is drawn below instead
	q.DisableBorder = true
	modules := q.Bitmap()

	margin := e.Margin
	if margin < 0 {
		margin = 0
	}
	grid := len(modules) + 2*margin

	size := e.Size
	if size < grid {
		size = grid
	}

	img := image.NewPaletted(image.Rect(0, 0, size, size), color.Palette{color.White, color.Black})
	for y := 0; y < size; y++ {
		my := y*grid/size - margin
		if my < 0 || my >= len(modules) {
			continue
		}
		for x := 0; x < size; x++ {
			mx := x*grid/size - margin
			if mx >= 0 && mx < len(modules) && modules[my][mx] {
				img.SetColorIndex(x, y, 1)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("qr png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL wraps PNG bytes for inline <img src> use.
func DataURL(pngBytes []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}
