package captcha

import (
	"bytes"
	"fmt"
	"math/rand"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

const (
	canvasWidth  = 200
	canvasHeight = 80

	noiseLines = 6
	noiseDots  = 100

	maxJitterPx = 5.0
	maxRotation = 0.4 // radians

	fontSize = 42
)

// Renderer rasterizes challenge answers into noisy PNG images. Construct it
// once at startup; a font that fails to parse is a configuration error, not
// a per-request condition.
type Renderer struct {
	mu   sync.Mutex // font.Face is not safe for concurrent use
	face font.Face
}

func NewRenderer() (*Renderer, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build font face: %w", err)
	}
	return &Renderer{face: face}, nil
}

// Render draws text onto a 200x80 canvas: light background, 6 noise lines,
// 100 noise dots, then each glyph at an evenly spaced slot with independent
// vertical jitter and rotation. Noise reseeds every call, so two renders of
// the same text never produce the same bytes.
func (r *Renderer) Render(text string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dc := gg.NewContext(canvasWidth, canvasHeight)

	dc.SetRGB255(0xf4, 0xf4, 0xf0)
	dc.Clear()

	for i := 0; i < noiseLines; i++ {
		dc.SetRGBA(rand.Float64(), rand.Float64(), rand.Float64(), 0.3+rand.Float64()*0.4)
		dc.SetLineWidth(1.5)
		dc.DrawLine(
			rand.Float64()*canvasWidth, rand.Float64()*canvasHeight,
			rand.Float64()*canvasWidth, rand.Float64()*canvasHeight,
		)
		dc.Stroke()
	}

	for i := 0; i < noiseDots; i++ {
		dc.SetRGBA(rand.Float64(), rand.Float64(), rand.Float64(), 0.2+rand.Float64()*0.5)
		dc.DrawRectangle(rand.Float64()*canvasWidth, rand.Float64()*canvasHeight, 2, 2)
		dc.Fill()
	}

	dc.SetFontFace(r.face)
	runes := []rune(text)
	slot := float64(canvasWidth) / float64(len(runes)+1)
	for i, ch := range runes {
		x := slot * float64(i+1)
		y := float64(canvasHeight)/2 + (rand.Float64()*2-1)*maxJitterPx
		angle := (rand.Float64()*2 - 1) * maxRotation

		dc.Push()
		dc.RotateAbout(angle, x, y)
		dc.SetRGB255(0x26, 0x26, 0x2b)
		dc.DrawStringAnchored(string(ch), x, y, 0.5, 0.5)
		dc.Pop()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
