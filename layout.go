package mochi

import "strings"

// TextStyle selects a typographic role. Hosts map each role to a face.
type TextStyle uint8

const (
	TextHero      TextStyle = iota // hero headline lines
	TextCaption                    // hero caption under the headline
	TextHeading                    // panel titles and the finale signature
	TextBody                       // panel body copy
	TextButton                     // finale button label
	TextOverlay                    // loading overlay label
)

// TextAlign controls horizontal text alignment within a TextBlock.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
)

// Measurer reports text metrics for a style, in pixels.
type Measurer interface {
	Advance(s string, style TextStyle) float64
	LineHeight(style TextStyle) float64
}

// Content is the text of the card, in reading order.
type Content struct {
	HeroLines []string
	Caption   string
	Panels    []PanelText
	Signature string
	Button    string
}

// PanelText is the text of one message panel.
type PanelText struct {
	Title string
	Body  string
}

// TextBlock is a run of laid-out lines in content coordinates.
type TextBlock struct {
	Lines []string
	Style TextStyle
	Align TextAlign
	Rect  Rect
}

// PanelLayout positions one panel. Button is zero except on the finale.
type PanelLayout struct {
	Rect   Rect
	Blocks []TextBlock
	Button Rect
	Finale bool
}

// Layout is the geometry of the scrollable content for one viewport. All
// rectangles are in content coordinates: y = 0 is the top of the content and
// screen y is content y minus the scroll offset.
type Layout struct {
	Viewport      Size
	Hero          Rect
	HeroBlocks    []TextBlock
	Hint          Rect
	Panels        []PanelLayout
	ContentHeight float64
}

// Bounds implements ElementGeometry: the content container spans from the top
// of the content to its full height.
func (l *Layout) Bounds() Span {
	return Span{Top: 0, Height: l.ContentHeight}
}

// Layout metrics in CSS-like pixels.
const (
	wideBreakpoint   = 768.0
	gutter           = 16.0
	panelMaxWidth    = 448.0
	panelPadding     = 32.0
	finalePadding    = 40.0
	heroBottomPad    = 48.0
	hintSize         = 32.0
	hintBottom       = 32.0
	contentBottomPad = 128.0
	buttonPadX       = 32.0
	buttonPadY       = 16.0
)

// ComputeLayout lays out content for viewport vp. minHeightVH is the minimum
// content height in viewport heights.
func ComputeLayout(c Content, vp Size, minHeightVH float64, m Measurer) Layout {
	w, h := vp.Width, vp.Height
	wide := w >= wideBreakpoint
	l := Layout{Viewport: vp, Hero: Rect{0, 0, w, h}}

	// Hero: headline, caption, anchored above the section's bottom padding.
	textW := max(w-2*gutter, 0)
	heroLH := m.LineHeight(TextHero)
	headline := TextBlock{Lines: c.HeroLines, Style: TextHero, Align: TextAlignCenter}
	headline.Rect = Rect{gutter, 0, textW, heroLH * float64(len(c.HeroLines))}
	caption := wrapBlock(c.Caption, TextCaption, TextAlignCenter, textW, m)
	stack := headline.Rect.Height + 8 + 16 + caption.Rect.Height + 32
	top := h - heroBottomPad - stack
	headline.Rect.Y = top
	caption.Rect = Rect{gutter, top + headline.Rect.Height + 8 + 16, textW, caption.Rect.Height}
	l.HeroBlocks = []TextBlock{headline, caption}
	l.Hint = Rect{w/2 - hintSize/2, h - hintBottom - hintSize, hintSize, hintSize}

	// Panels.
	cardW := max(min(panelMaxWidth, w-2*gutter)-2*gutter, 0)
	cardX := (w - cardW) / 2
	spacer := h * 0.3
	if wide {
		spacer = h * 0.4
	}
	y := h + h*0.1
	for i, p := range c.Panels {
		if i > 0 {
			y += spacer
		}
		innerW := max(cardW-2*panelPadding, 0)
		title := wrapBlock(p.Title, TextHeading, TextAlignLeft, innerW, m)
		body := wrapBlock(p.Body, TextBody, TextAlignLeft, innerW, m)
		title.Rect.X, title.Rect.Y = cardX+panelPadding, y+panelPadding
		body.Rect.X, body.Rect.Y = cardX+panelPadding, title.Rect.Bottom()+16
		ph := panelPadding + title.Rect.Height + 16 + body.Rect.Height + panelPadding
		l.Panels = append(l.Panels, PanelLayout{
			Rect:   Rect{cardX, y, cardW, ph},
			Blocks: []TextBlock{title, body},
		})
		y += ph
	}

	// Finale: signature and the celebration button, centered.
	if len(c.Panels) > 0 {
		y += spacer
	}
	innerW := max(cardW-2*finalePadding, 0)
	sig := wrapBlock(c.Signature, TextHeading, TextAlignCenter, innerW, m)
	sig.Rect.X, sig.Rect.Y = cardX+finalePadding, y+finalePadding
	bw := m.Advance(c.Button, TextButton) + 2*buttonPadX
	bh := m.LineHeight(TextButton) + 2*buttonPadY
	button := Rect{w/2 - bw/2, sig.Rect.Bottom() + 32, bw, bh}
	fh := finalePadding + sig.Rect.Height + 32 + bh + finalePadding
	l.Panels = append(l.Panels, PanelLayout{
		Rect:   Rect{cardX, y, cardW, fh},
		Blocks: []TextBlock{sig},
		Button: button,
		Finale: true,
	})
	y += fh + contentBottomPad

	l.ContentHeight = max(y, minHeightVH*h)
	return l
}

func wrapBlock(s string, style TextStyle, align TextAlign, width float64, m Measurer) TextBlock {
	lines := WrapText(s, width, func(part string) float64 { return m.Advance(part, style) })
	return TextBlock{
		Lines: lines,
		Style: style,
		Align: align,
		Rect:  Rect{Width: width, Height: m.LineHeight(style) * float64(len(lines))},
	}
}

// WrapText breaks s into lines no wider than maxWidth, greedily by word.
// Newlines in s force a break. A single word wider than maxWidth gets a line
// of its own. A maxWidth <= 0 disables wrapping.
func WrapText(s string, maxWidth float64, advance func(string) float64) []string {
	if s == "" {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if maxWidth > 0 && advance(next) > maxWidth {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = next
		}
		lines = append(lines, cur)
	}
	return lines
}

// MonoMeasurer measures text as fixed-width cells. The terminal host uses
// it, and tests use it for predictable geometry.
type MonoMeasurer struct {
	CellWidth, CellHeight float64
}

// Advance implements Measurer.
func (m MonoMeasurer) Advance(s string, _ TextStyle) float64 {
	return float64(len([]rune(s))) * m.CellWidth
}

// LineHeight implements Measurer.
func (m MonoMeasurer) LineHeight(_ TextStyle) float64 {
	return m.CellHeight
}
