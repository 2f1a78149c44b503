package termui

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/mochi"
)

// rabbit is the placeholder model, drawn once per side of the screen center.
var rabbit = []string{
	`(\_/)`,
	`(o.o)`,
	`(> <)`,
}

// canvas draws frame content into screen cells over a fixed background.
type canvas struct {
	screen tcell.Screen
	w, h   int
	bg     mochi.Color
}

func drawFrame(screen tcell.Screen, f *mochi.Frame) {
	w, h := screen.Size()
	c := canvas{screen: screen, w: w, h: h, bg: f.Palette.Background}
	c.fill(0, 0, w, h, f.Palette.Background)

	if f.Loading.Visible {
		c.drawLoading(f)
		return
	}
	c.drawModel(f)
	for _, b := range f.Hero.Blocks {
		c.drawBlock(b, f.Palette.Text, f.Hero.Alpha, f.Palette.Background)
	}
	if f.Hint.Visible && f.Hint.Alpha > 0 {
		x, y := c.cell(f.Hint.Rect.X+f.Hint.Rect.Width/2, f.Hint.Rect.Y+f.Hint.Rect.Height/2)
		c.put(x, y, 'v', f.Palette.Text, f.Hint.Alpha, f.Palette.Background)
	}
	for _, p := range f.Panels {
		if p.Alpha > 0 {
			c.drawPanel(p, f.Palette)
		}
	}
	if f.Button.Visible {
		c.drawButton(f.Button, f.Palette)
	}
	if f.Celebration.Active {
		for _, p := range f.Celebration.Pieces {
			x, y := c.cell(p.X, p.Y)
			c.put(x, y, confettiRune(p.Shape), p.Color, 1, c.bgAt(x, y))
		}
	}
}

func confettiRune(s mochi.ConfettiShape) rune {
	switch s {
	case mochi.ConfettiCircle:
		return 'o'
	case mochi.ConfettiStrip:
		return '~'
	default:
		return '*'
	}
}

// cell converts card pixels to a cell position.
func (c *canvas) cell(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

func (c *canvas) drawLoading(f *mochi.Frame) {
	cx, cy := c.w/2, c.h/2
	heart := '♥'
	if f.Loading.HeartScale > 1.1 {
		heart = '❤'
	}
	c.put(cx, cy-1, heart, f.Palette.Accent, 1, f.Palette.Background)
	c.text(cx-len(f.Loading.Label)/2, cy+1, f.Loading.Label, f.Palette.Text, 0.8, f.Palette.Background)
}

func (c *canvas) drawModel(f *mochi.Frame) {
	if f.Model.Alpha <= 0 {
		return
	}
	fur := mochi.Color{R: 1, G: 1, B: 1, A: 1}
	cy := c.h/2 - len(rabbit)/2
	for _, cx := range []int{c.w/2 - 8, c.w/2 + 3} {
		for i, line := range rabbit {
			c.text(cx, cy+i, line, fur, f.Model.Alpha, f.Palette.Background)
		}
	}
}

func (c *canvas) drawPanel(p mochi.PanelFrame, pal mochi.Palette) {
	x0, y0 := c.cell(p.Rect.X, p.Rect.Y)
	x1, y1 := c.cell(p.Rect.X+p.Rect.Width, p.Rect.Bottom())
	panel := blend(pal.Panel, pal.Background, p.Alpha)
	c.fill(x0, y0, x1-x0, y1-y0, panel)
	for _, b := range p.Blocks {
		c.drawBlock(b, pal.Text, p.Alpha, panel)
	}
}

func (c *canvas) drawButton(b mochi.ButtonFrame, pal mochi.Palette) {
	label := "[ " + b.Label + " ]"
	x, y := c.cell(b.Rect.X+b.Rect.Width/2, b.Rect.Y+b.Rect.Height/2)
	x -= len([]rune(label)) / 2
	alpha := 1.0
	if !b.Enabled {
		alpha = 0.5
	}
	bg := blend(pal.Accent, c.bgAt(x, y), alpha)
	for i, r := range []rune(label) {
		style := tcell.StyleDefault.Foreground(toTcell(pal.ButtonText)).Background(toTcell(bg))
		if b.Hover {
			style = style.Bold(true)
		}
		c.setContent(x+i, y, r, style)
	}
}

// drawBlock writes each line of b on its own row. Centered lines are
// centered on the block.
func (c *canvas) drawBlock(b mochi.TextBlock, fg mochi.Color, alpha float64, bg mochi.Color) {
	if alpha <= 0 {
		return
	}
	x0, y0 := c.cell(b.Rect.X, b.Rect.Y)
	cols := int(b.Rect.Width / CellWidth)
	for i, line := range b.Lines {
		x := x0
		if b.Align == mochi.TextAlignCenter {
			x += (cols - len([]rune(line))) / 2
		}
		c.text(x, y0+i, line, fg, alpha, bg)
	}
}

func (c *canvas) text(x, y int, s string, fg mochi.Color, alpha float64, bg mochi.Color) {
	for i, r := range []rune(s) {
		c.put(x+i, y, r, fg, alpha, bg)
	}
}

// put draws r with fg faded into bg by alpha.
func (c *canvas) put(x, y int, r rune, fg mochi.Color, alpha float64, bg mochi.Color) {
	style := tcell.StyleDefault.
		Foreground(toTcell(blend(fg, bg, alpha*fg.A))).
		Background(toTcell(bg))
	c.setContent(x, y, r, style)
}

func (c *canvas) fill(x, y, w, h int, clr mochi.Color) {
	style := tcell.StyleDefault.Background(toTcell(clr))
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.setContent(col, row, ' ', style)
		}
	}
}

// bgAt returns the background already drawn at a cell.
func (c *canvas) bgAt(x, y int) mochi.Color {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return c.bg
	}
	_, _, style, _ := c.screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	if bg == tcell.ColorDefault {
		return c.bg
	}
	r, g, b := bg.RGB()
	return mochi.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}
}

func (c *canvas) setContent(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.screen.SetContent(x, y, r, nil, style)
}

// blend mixes fg over bg with weight a.
func blend(fg, bg mochi.Color, a float64) mochi.Color {
	a = min(max(a, 0), 1)
	return mochi.Color{
		R: bg.R + (fg.R-bg.R)*a,
		G: bg.G + (fg.G-bg.G)*a,
		B: bg.B + (fg.B-bg.B)*a,
		A: 1,
	}
}

func toTcell(c mochi.Color) tcell.Color {
	r, g, b, _ := c.RGBA8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
