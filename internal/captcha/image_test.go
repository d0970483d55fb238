package captcha

import (
	"bytes"
	"image/png"
	"testing"
)

func TestRenderValidPNG(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	data, err := r.Render("K3XQ9P")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty image bytes")
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != canvasWidth || bounds.Dy() != canvasHeight {
		t.Errorf("canvas = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), canvasWidth, canvasHeight)
	}
}

func TestRenderNonDeterministic(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	a, err := r.Render("K3XQ9P")
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	b, err := r.Render("K3XQ9P")
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two renders of the same text produced identical bytes")
	}
}
