package ebitenui

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/mochi"
)

// face is one text/v2 face with its cached line height.
type face struct {
	face *text.GoTextFace
	lh   float64
}

// Faces maps each mochi.TextStyle to a Go font face. It implements
// mochi.Measurer, so layout and drawing agree on every advance.
type Faces struct {
	byStyle map[mochi.TextStyle]face
}

// styleSizes are point sizes at scale 1. Bold styles use Go Bold.
var styleSizes = map[mochi.TextStyle]struct {
	size float64
	bold bool
}{
	mochi.TextHero:    {56, true},
	mochi.TextCaption: {15, false},
	mochi.TextHeading: {26, true},
	mochi.TextBody:    {17, false},
	mochi.TextButton:  {18, true},
	mochi.TextOverlay: {14, true},
}

// NewFaces loads the Go fonts at the given scale.
func NewFaces(scale float64) (*Faces, error) {
	if scale <= 0 {
		scale = 1
	}
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("ebitenui: parse regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("ebitenui: parse bold font: %w", err)
	}
	f := &Faces{byStyle: make(map[mochi.TextStyle]face, len(styleSizes))}
	for style, s := range styleSizes {
		src := regular
		if s.bold {
			src = bold
		}
		gf := &text.GoTextFace{Source: src, Size: s.size * scale}
		m := gf.Metrics()
		f.byStyle[style] = face{face: gf, lh: m.HAscent + m.HDescent + m.HLineGap}
	}
	return f, nil
}

// Advance implements mochi.Measurer.
func (f *Faces) Advance(s string, style mochi.TextStyle) float64 {
	return text.Advance(s, f.byStyle[style].face)
}

// LineHeight implements mochi.Measurer.
func (f *Faces) LineHeight(style mochi.TextStyle) float64 {
	return f.byStyle[style].lh
}

// Face returns the text/v2 face for style.
func (f *Faces) Face(style mochi.TextStyle) *text.GoTextFace {
	return f.byStyle[style].face
}
