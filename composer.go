package mochi

// CurveValues are the progress-driven channels for one update.
type CurveValues struct {
	ModelOpacity float64
	HintOpacity  float64
	PanelOffsets []float64
}

// MotionValues are the time-driven channels for one update.
type MotionValues struct {
	Hero        Reveal
	Panels      []Reveal
	HintBob     float64
	HeartScale  float64
	ButtonScale float64
	ButtonHover bool
}

// ComposeInput is everything Compose reads. Compose owns none of it.
type ComposeInput struct {
	Viewport Size
	Progress float64
	ScrollY  float64
	State    LifecycleState
	Layout   *Layout
	Content  Content
	Palette  Palette
	Curves   CurveValues
	Motion   MotionValues
	Confetti []ConfettiPiece
}

// Region identifies what a screen point would interact with.
type Region uint8

const (
	RegionNone    Region = iota // nothing interactive
	RegionOverlay               // the loading overlay swallows input
	RegionModel                 // the background model
	RegionPanel                 // a message panel (selectable, not clickable)
	RegionButton                // the celebration button
)

func (r Region) String() string {
	switch r {
	case RegionOverlay:
		return "overlay"
	case RegionModel:
		return "model"
	case RegionPanel:
		return "panel"
	case RegionButton:
		return "button"
	default:
		return "none"
	}
}

// LoadingLayer is the full-screen overlay shown while loading.
type LoadingLayer struct {
	Visible    bool
	HeartScale float64
	Label      string
}

// ModelLayer is the fixed background layer holding the 3D model.
type ModelLayer struct {
	Alpha       float64
	Interactive bool
}

// HeroLayer is the first screen's text.
type HeroLayer struct {
	Visible bool
	Alpha   float64
	Blocks  []TextBlock
}

// HintLayer is the scroll-down indicator.
type HintLayer struct {
	Visible bool
	Alpha   float64
	Rect    Rect
}

// PanelFrame is one message panel in screen coordinates.
type PanelFrame struct {
	Rect    Rect
	Blocks  []TextBlock
	Alpha   float64
	OffsetY float64
	Finale  bool
}

// ButtonFrame is the celebration button in screen coordinates. Rect is the
// unscaled hit area; Scale is applied around its center when drawing.
type ButtonFrame struct {
	Visible bool
	Enabled bool
	Hover   bool
	Rect    Rect
	Scale   float64
	Label   string
}

// CelebrationLayer is the confetti overlay. It never takes input.
type CelebrationLayer struct {
	Active bool
	Size   Size
	Pieces []ConfettiPiece
}

// Frame is the render sink: every value a presentation layer needs to draw
// one update. Layers are listed back to front.
type Frame struct {
	Viewport Size
	Progress float64
	ScrollY  float64
	Palette  Palette
	State    LifecycleState

	Model       ModelLayer
	Hero        HeroLayer
	Hint        HintLayer
	Panels      []PanelFrame
	Button      ButtonFrame
	Celebration CelebrationLayer
	Loading     LoadingLayer

	// ForegroundInteractive reports whether the scrollable content accepts
	// input. It is false while loading.
	ForegroundInteractive bool
}

// LoadingLabel is the text shown under the loading heart.
const LoadingLabel = "LOADING..."

// Compose derives a Frame purely from its input. The loading overlay is
// present iff the phase is Loading; the celebration layer iff the celebration
// is active, sized to the viewport; content accepts input only once Ready.
func Compose(in ComposeInput) Frame {
	ready := in.State.Ready()
	f := Frame{
		Viewport: in.Viewport,
		Progress: in.Progress,
		ScrollY:  in.ScrollY,
		Palette:  in.Palette,
		State:    in.State,
		Model: ModelLayer{
			Alpha:       clamp01(in.Curves.ModelOpacity),
			Interactive: ready,
		},
		Loading: LoadingLayer{
			Visible:    in.State.Loading(),
			HeartScale: in.Motion.HeartScale,
			Label:      LoadingLabel,
		},
		Celebration: CelebrationLayer{
			Active: in.State.CelebrationActive,
		},
		ForegroundInteractive: ready,
	}
	if f.Celebration.Active {
		f.Celebration.Size = in.Viewport
		f.Celebration.Pieces = in.Confetti
	}
	if in.Layout == nil {
		return f
	}
	l := in.Layout
	dy := -in.ScrollY

	if ready {
		hero := in.Motion.Hero
		f.Hero = HeroLayer{
			Visible: true,
			Alpha:   clamp01(hero.Alpha),
			Blocks:  translateBlocks(l.HeroBlocks, dy+hero.OffsetY),
		}
		f.Hint = HintLayer{
			Visible: true,
			Alpha:   clamp01(in.Curves.HintOpacity),
			Rect:    l.Hint.Translate(0, dy+in.Motion.HintBob),
		}
	}

	f.Panels = make([]PanelFrame, len(l.Panels))
	for i, p := range l.Panels {
		offset := valueAt(in.Curves.PanelOffsets, i)
		reveal := Shown
		if i < len(in.Motion.Panels) {
			reveal = in.Motion.Panels[i]
		}
		shift := dy + offset + reveal.OffsetY
		f.Panels[i] = PanelFrame{
			Rect:    p.Rect.Translate(0, shift),
			Blocks:  translateBlocks(p.Blocks, shift),
			Alpha:   clamp01(reveal.Alpha),
			OffsetY: offset,
			Finale:  p.Finale,
		}
		if p.Finale {
			scale := in.Motion.ButtonScale
			if scale == 0 {
				scale = 1
			}
			f.Button = ButtonFrame{
				Visible: true,
				Enabled: ready,
				Hover:   ready && in.Motion.ButtonHover,
				Rect:    p.Button.Translate(0, shift),
				Scale:   scale,
				Label:   in.Content.Button,
			}
		}
	}
	return f
}

// HitTest reports which region receives input at screen point (x, y).
// The celebration layer passes input through; the loading overlay swallows
// it. Panels only take input once the foreground is interactive, and empty
// space falls through to the model.
func (f *Frame) HitTest(x, y float64) Region {
	if f.Loading.Visible {
		return RegionOverlay
	}
	if f.ForegroundInteractive {
		if f.Button.Visible && f.Button.Enabled && f.Button.Rect.Contains(x, y) {
			return RegionButton
		}
		for _, p := range f.Panels {
			if p.Alpha > 0 && p.Rect.Contains(x, y) {
				return RegionPanel
			}
		}
	}
	if f.Model.Interactive {
		return RegionModel
	}
	return RegionNone
}

func translateBlocks(blocks []TextBlock, dy float64) []TextBlock {
	out := make([]TextBlock, len(blocks))
	for i, b := range blocks {
		b.Rect = b.Rect.Translate(0, dy)
		out[i] = b
	}
	return out
}

func valueAt(vs []float64, i int) float64 {
	if i < len(vs) {
		return vs[i]
	}
	return 0
}
