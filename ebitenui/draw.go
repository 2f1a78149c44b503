package ebitenui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/mochi"
)

// whitePixel is the source image for DrawTriangles fills.
var whitePixel *ebiten.Image

func solidSource() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

const panelCorner = 18

// renderer draws a mochi.Frame onto an ebiten image, back to front.
type renderer struct {
	faces *Faces
	model *Model
	path  vector.Path
	verts []ebiten.Vertex
	idx   []uint16
}

func (r *renderer) draw(dst *ebiten.Image, f *mochi.Frame) {
	dst.Fill(toColor(f.Palette.Background))

	r.drawModel(dst, f)
	for _, b := range f.Hero.Blocks {
		r.drawBlock(dst, b, f.Palette.Text, f.Hero.Alpha)
	}
	if f.Hint.Visible && f.Hint.Alpha > 0 {
		r.drawHint(dst, f.Hint, f.Palette.Text)
	}
	for _, p := range f.Panels {
		if p.Alpha <= 0 || !onScreen(p.Rect, f.Viewport) {
			continue
		}
		r.drawPanel(dst, p, f.Palette)
	}
	if f.Button.Visible {
		r.drawButton(dst, f.Button, f.Palette)
	}
	if f.Celebration.Active {
		for _, p := range f.Celebration.Pieces {
			r.drawPiece(dst, p)
		}
	}
	if f.Loading.Visible {
		r.drawLoading(dst, f)
	}
}

func onScreen(r mochi.Rect, vp mochi.Size) bool {
	return r.Intersects(mochi.Rect{Width: vp.Width, Height: vp.Height})
}

// drawModel draws the placeholder rabbits centered in the viewport.
func (r *renderer) drawModel(dst *ebiten.Image, f *mochi.Frame) {
	if f.Model.Alpha <= 0 || r.model == nil {
		return
	}
	cx, cy := f.Viewport.Width/2, f.Viewport.Height/2
	unit := math.Min(f.Viewport.Width, f.Viewport.Height) / 10 * r.model.Scale
	fur := mochi.Color{R: 1, G: 1, B: 1, A: 1}.WithAlpha(f.Model.Alpha)
	inner := f.Palette.Accent.WithAlpha(f.Model.Alpha)

	for _, side := range []float64{-1, 1} {
		// Rabbits stand on a ring and turn with the model.
		a := r.model.Angle + side*math.Pi/2
		depth := (math.Sin(a) + 2) / 3
		x := cx + math.Cos(a)*unit*1.6
		y := cy + unit*0.4
		s := unit * depth
		r.circle(dst, x, y, s, fur)
		r.circle(dst, x, y-s*1.1, s*0.7, fur)
		for _, ear := range []float64{-0.3, 0.3} {
			r.ellipse(dst, x+ear*s, y-s*2.1, s*0.18, s*0.55, fur)
			r.ellipse(dst, x+ear*s, y-s*2.1, s*0.09, s*0.4, inner)
		}
	}
}

func (r *renderer) drawHint(dst *ebiten.Image, h mochi.HintLayer, c mochi.Color) {
	clr := toColor(c.WithAlpha(h.Alpha))
	cx := float32(h.Rect.X + h.Rect.Width/2)
	top := float32(h.Rect.Y + h.Rect.Height*0.3)
	bot := float32(h.Rect.Y + h.Rect.Height*0.7)
	half := float32(h.Rect.Width * 0.35)
	vector.StrokeLine(dst, cx-half, top, cx, bot, 3, clr, true)
	vector.StrokeLine(dst, cx, bot, cx+half, top, 3, clr, true)
}

func (r *renderer) drawPanel(dst *ebiten.Image, p mochi.PanelFrame, pal mochi.Palette) {
	r.roundRect(dst, p.Rect, panelCorner, pal.Panel.WithAlpha(p.Alpha))
	for _, b := range p.Blocks {
		r.drawBlock(dst, b, pal.Text, p.Alpha)
	}
}

func (r *renderer) drawButton(dst *ebiten.Image, b mochi.ButtonFrame, pal mochi.Palette) {
	rect := scaleAround(b.Rect, b.Scale)
	alpha := 1.0
	if !b.Enabled {
		alpha = 0.5
	}
	r.roundRect(dst, rect, rect.Height/2, pal.Accent.WithAlpha(alpha))
	label := mochi.TextBlock{
		Lines: []string{b.Label},
		Style: mochi.TextButton,
		Align: mochi.TextAlignCenter,
		Rect:  rect,
	}
	lh := r.faces.LineHeight(mochi.TextButton)
	label.Rect.Y += (rect.Height - lh) / 2
	r.drawBlock(dst, label, pal.ButtonText, alpha)
}

// scaleAround scales r by s about its center.
func scaleAround(r mochi.Rect, s float64) mochi.Rect {
	if s == 1 || s <= 0 {
		return r
	}
	w, h := r.Width*s, r.Height*s
	return mochi.Rect{
		X:      r.X + (r.Width-w)/2,
		Y:      r.Y + (r.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

func (r *renderer) drawPiece(dst *ebiten.Image, p mochi.ConfettiPiece) {
	switch p.Shape {
	case mochi.ConfettiCircle:
		r.circle(dst, p.X, p.Y, p.Width/2, p.Color)
	case mochi.ConfettiStrip:
		r.quad(dst, p.X, p.Y, p.Width, p.Height/3, p.Angle, p.Color)
	default:
		r.quad(dst, p.X, p.Y, p.Width, p.Height, p.Angle, p.Color)
	}
}

func (r *renderer) drawLoading(dst *ebiten.Image, f *mochi.Frame) {
	vp := f.Viewport
	dst.Fill(toColor(f.Palette.Background))
	cx, cy := vp.Width/2, vp.Height/2-20
	scale := f.Loading.HeartScale
	if scale <= 0 {
		scale = 1
	}
	r.heart(dst, cx, cy, 24*scale, f.Palette.Accent)
	r.drawBlock(dst, mochi.TextBlock{
		Lines: []string{f.Loading.Label},
		Style: mochi.TextOverlay,
		Align: mochi.TextAlignCenter,
		Rect:  mochi.Rect{Y: cy + 48, Width: vp.Width},
	}, f.Palette.Text, 0.8)
}

// drawBlock draws each line of b at its own baseline. Centered lines are
// anchored on the block's horizontal center.
func (r *renderer) drawBlock(dst *ebiten.Image, b mochi.TextBlock, c mochi.Color, alpha float64) {
	if alpha <= 0 || len(b.Lines) == 0 {
		return
	}
	face := r.faces.Face(b.Style)
	lh := r.faces.LineHeight(b.Style)
	for i, line := range b.Lines {
		op := &text.DrawOptions{}
		x := b.Rect.X
		if b.Align == mochi.TextAlignCenter {
			x += b.Rect.Width / 2
			op.PrimaryAlign = text.AlignCenter
		}
		op.GeoM.Translate(x, b.Rect.Y+float64(i)*lh)
		op.ColorScale.ScaleWithColor(toColor(c))
		op.ColorScale.ScaleAlpha(float32(clamp01(alpha)))
		text.Draw(dst, line, face, op)
	}
}

func (r *renderer) circle(dst *ebiten.Image, x, y, radius float64, c mochi.Color) {
	if c.A <= 0 || radius <= 0 {
		return
	}
	vector.DrawFilledCircle(dst, float32(x), float32(y), float32(radius), toColor(c), true)
}

func (r *renderer) ellipse(dst *ebiten.Image, x, y, rx, ry float64, c mochi.Color) {
	const segments = 24
	r.path.Reset()
	for i := range segments {
		a := 2 * math.Pi * float64(i) / segments
		px, py := float32(x+rx*math.Cos(a)), float32(y+ry*math.Sin(a))
		if i == 0 {
			r.path.MoveTo(px, py)
		} else {
			r.path.LineTo(px, py)
		}
	}
	r.path.Close()
	r.fillPath(dst, c)
}

// quad draws a w x h rectangle centered on (x, y) rotated by angle.
func (r *renderer) quad(dst *ebiten.Image, x, y, w, h, angle float64, c mochi.Color) {
	sin, cos := math.Sincos(angle)
	corners := [4][2]float64{{-w / 2, -h / 2}, {w / 2, -h / 2}, {w / 2, h / 2}, {-w / 2, h / 2}}
	r.path.Reset()
	for i, p := range corners {
		px := float32(x + p[0]*cos - p[1]*sin)
		py := float32(y + p[0]*sin + p[1]*cos)
		if i == 0 {
			r.path.MoveTo(px, py)
		} else {
			r.path.LineTo(px, py)
		}
	}
	r.path.Close()
	r.fillPath(dst, c)
}

// heart draws two lobes and a point, size being the lobe radius.
func (r *renderer) heart(dst *ebiten.Image, cx, cy, size float64, c mochi.Color) {
	r.circle(dst, cx-size*0.7, cy, size, c)
	r.circle(dst, cx+size*0.7, cy, size, c)
	r.path.Reset()
	r.path.MoveTo(float32(cx-size*1.65), float32(cy+size*0.3))
	r.path.LineTo(float32(cx+size*1.65), float32(cy+size*0.3))
	r.path.LineTo(float32(cx), float32(cy+size*2.2))
	r.path.Close()
	r.fillPath(dst, c)
}

func (r *renderer) roundRect(dst *ebiten.Image, rect mochi.Rect, radius float64, c mochi.Color) {
	radius = math.Min(radius, math.Min(rect.Width, rect.Height)/2)
	if radius <= 0 {
		vector.DrawFilledRect(dst, float32(rect.X), float32(rect.Y),
			float32(rect.Width), float32(rect.Height), toColor(c), true)
		return
	}
	x0, y0 := float32(rect.X), float32(rect.Y)
	x1, y1 := float32(rect.X+rect.Width), float32(rect.Y+rect.Height)
	rr := float32(radius)
	r.path.Reset()
	r.path.MoveTo(x0+rr, y0)
	r.path.LineTo(x1-rr, y0)
	r.path.ArcTo(x1, y0, x1, y0+rr, rr)
	r.path.LineTo(x1, y1-rr)
	r.path.ArcTo(x1, y1, x1-rr, y1, rr)
	r.path.LineTo(x0+rr, y1)
	r.path.ArcTo(x0, y1, x0, y1-rr, rr)
	r.path.LineTo(x0, y0+rr)
	r.path.ArcTo(x0, y0, x0+rr, y0, rr)
	r.path.Close()
	r.fillPath(dst, c)
}

// fillPath fills r.path with a solid straight-alpha color.
func (r *renderer) fillPath(dst *ebiten.Image, c mochi.Color) {
	if c.A <= 0 {
		return
	}
	r.verts, r.idx = r.path.AppendVerticesAndIndicesForFilling(r.verts[:0], r.idx[:0])
	cr, cg, cb, ca := premultiplied(c)
	for i := range r.verts {
		r.verts[i].SrcX, r.verts[i].SrcY = 1, 1
		r.verts[i].ColorR, r.verts[i].ColorG, r.verts[i].ColorB, r.verts[i].ColorA = cr, cg, cb, ca
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		FillRule:       ebiten.FillRuleNonZero,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	}
	dst.DrawTriangles(r.verts, r.idx, solidSource(), op)
}

func premultiplied(c mochi.Color) (r, g, b, a float32) {
	a = float32(clamp01(c.A))
	return float32(clamp01(c.R)) * a, float32(clamp01(c.G)) * a, float32(clamp01(c.B)) * a, a
}

func toColor(c mochi.Color) color.NRGBA {
	r, g, b, a := c.RGBA8()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
