package mochi

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

//go:embed card.yaml
var defaultCardYAML []byte

// Config is the card document. It is decoded from YAML on top of the
// embedded default card, so a document only needs the fields it changes.
type Config struct {
	Title       string         `yaml:"title"`
	ShareURL    string         `yaml:"share_url"`
	Palette     PaletteConfig  `yaml:"palette"`
	SettleDelay time.Duration  `yaml:"settle_delay"`
	Model       ModelConfig    `yaml:"model"`
	Scroll      ScrollConfig   `yaml:"scroll"`
	Hero        HeroConfig     `yaml:"hero"`
	Panels      []PanelConfig  `yaml:"panels"`
	Finale      FinaleConfig   `yaml:"finale"`
	Channels    ChannelsConfig `yaml:"channels"`
	Motion      MotionConfig   `yaml:"motion"`
	Confetti    ConfettiConfig `yaml:"confetti"`
}

// PaletteConfig holds hex colors.
type PaletteConfig struct {
	Background string `yaml:"background"`
	Text       string `yaml:"text"`
	Accent     string `yaml:"accent"`
	Panel      string `yaml:"panel"`
	ButtonText string `yaml:"button_text"`
}

// ModelConfig locates the background model. An empty URL means a local
// model that is ready immediately.
type ModelConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ScrollConfig configures the tracked scroll region.
type ScrollConfig struct {
	Offset      []string `yaml:"offset"`
	MinHeightVH float64  `yaml:"min_height_vh"`
	WheelStep   float64  `yaml:"wheel_step"`
}

// HeroConfig is the first screen's text.
type HeroConfig struct {
	Lines   []string `yaml:"lines"`
	Caption string   `yaml:"caption"`
}

// PanelConfig is one message panel and its parallax curve.
type PanelConfig struct {
	Title  string          `yaml:"title"`
	Body   string          `yaml:"body"`
	Offset CurveDefinition `yaml:"offset"`
}

// FinaleConfig is the closing panel with the celebration button.
type FinaleConfig struct {
	Signature string          `yaml:"signature"`
	Button    string          `yaml:"button"`
	Offset    CurveDefinition `yaml:"offset"`
}

// ChannelsConfig holds the progress curves that are not tied to a panel.
type ChannelsConfig struct {
	ModelOpacity CurveDefinition `yaml:"model_opacity"`
	HintOpacity  CurveDefinition `yaml:"hint_opacity"`
}

// RevealConfig is an entrance animation: fade in while sliding up by Offset.
type RevealConfig struct {
	Offset   float64       `yaml:"offset"`
	Duration time.Duration `yaml:"duration"`
	Delay    time.Duration `yaml:"delay"`
	Ease     string        `yaml:"ease"`
}

// MotionConfig holds the time-based animations.
type MotionConfig struct {
	HeroEntrance RevealConfig    `yaml:"hero_entrance"`
	PanelReveal  RevealConfig    `yaml:"panel_reveal"`
	RevealMargin float64         `yaml:"reveal_margin"`
	HintBob      CurveDefinition `yaml:"hint_bob"`
	HeartPulse   CurveDefinition `yaml:"heart_pulse"`
	ButtonHover  float64         `yaml:"button_hover"`
	ButtonPress  float64         `yaml:"button_press"`
}

// ConfettiConfig is the celebration effect.
type ConfettiConfig struct {
	Pieces   int           `yaml:"pieces"`
	Gravity  float64       `yaml:"gravity"`
	FillTime time.Duration `yaml:"fill_time"`
	Colors   []string      `yaml:"colors"`
}

// DefaultConfig returns the embedded default card.
func DefaultConfig() *Config {
	var cfg Config
	if err := decodeYAML(defaultCardYAML, &cfg); err != nil {
		panic(fmt.Sprintf("mochi: embedded card: %v", err))
	}
	return &cfg
}

// ParseConfig decodes a YAML card document over the default card and
// validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := decodeYAML(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the card document at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	debugf("config loaded from %s", path)
	return cfg, nil
}

func decodeYAML(data []byte, out *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate compiles the document and reports the first violation.
func (c *Config) Validate() error {
	_, err := c.Compile()
	return err
}

// Palette is the resolved color scheme.
type Palette struct {
	Background Color
	Text       Color
	Accent     Color
	Panel      Color
	ButtonText Color
}

// Card is a validated, compiled Config: parsed colors, built curves and
// resolved eases, ready for a Session.
type Card struct {
	Config  *Config
	Palette Palette
	Content Content
	Offset  ScrollOffset

	ModelOpacity *Curve
	HintOpacity  *Curve
	// PanelOffsets holds one parallax curve per panel, finale last.
	PanelOffsets []*Curve

	HintBob     *Curve
	HeartPulse  *Curve
	HeroEase    ease.TweenFunc
	RevealEase  ease.TweenFunc
	Confetti    ConfettiSettings
	SettleDelay time.Duration
}

// Compile validates c and resolves it into a Card.
func (c *Config) Compile() (*Card, error) {
	card := &Card{Config: c}
	var err error

	if c.SettleDelay < 0 {
		return nil, configErrorf("settle_delay", "negative delay %v", c.SettleDelay)
	}
	card.SettleDelay = c.SettleDelay

	colors := []struct {
		field string
		src   string
		dst   *Color
	}{
		{"palette.background", c.Palette.Background, &card.Palette.Background},
		{"palette.text", c.Palette.Text, &card.Palette.Text},
		{"palette.accent", c.Palette.Accent, &card.Palette.Accent},
		{"palette.panel", c.Palette.Panel, &card.Palette.Panel},
		{"palette.button_text", c.Palette.ButtonText, &card.Palette.ButtonText},
	}
	for _, col := range colors {
		if *col.dst, err = ParseHexColor(col.src); err != nil {
			return nil, &ConfigError{Field: col.field, Reason: err.Error()}
		}
	}

	if card.Offset, err = ParseScrollOffset(c.Scroll.Offset); err != nil {
		return nil, err
	}
	if card.Offset.Start == card.Offset.End {
		return nil, configErrorf("scroll.offset", "start and end edges coincide")
	}
	if c.Scroll.MinHeightVH < 0 {
		return nil, configErrorf("scroll.min_height_vh", "negative minimum height %g", c.Scroll.MinHeightVH)
	}
	if c.Scroll.WheelStep <= 0 {
		return nil, configErrorf("scroll.wheel_step", "must be positive, have %g", c.Scroll.WheelStep)
	}

	if len(c.Hero.Lines) == 0 {
		return nil, configErrorf("hero.lines", "at least one headline line is required")
	}
	card.Content = Content{
		HeroLines: c.Hero.Lines,
		Caption:   c.Hero.Caption,
		Signature: c.Finale.Signature,
		Button:    c.Finale.Button,
	}
	if c.Finale.Button == "" {
		return nil, configErrorf("finale.button", "a button label is required")
	}

	for i, p := range c.Panels {
		curve, err := p.Offset.Build(true)
		if err != nil {
			return nil, wrapField(fmt.Sprintf("panels[%d].offset", i), err)
		}
		card.PanelOffsets = append(card.PanelOffsets, curve)
		card.Content.Panels = append(card.Content.Panels, PanelText{Title: p.Title, Body: p.Body})
	}
	finale, err := c.Finale.Offset.Build(true)
	if err != nil {
		return nil, wrapField("finale.offset", err)
	}
	card.PanelOffsets = append(card.PanelOffsets, finale)

	if card.ModelOpacity, err = c.Channels.ModelOpacity.Build(true); err != nil {
		return nil, wrapField("channels.model_opacity", err)
	}
	if card.HintOpacity, err = c.Channels.HintOpacity.Build(true); err != nil {
		return nil, wrapField("channels.hint_opacity", err)
	}
	if card.HintBob, err = c.Motion.HintBob.Build(false); err != nil {
		return nil, wrapField("motion.hint_bob", err)
	}
	if card.HeartPulse, err = c.Motion.HeartPulse.Build(false); err != nil {
		return nil, wrapField("motion.heart_pulse", err)
	}
	if card.HeroEase, err = revealEase(c.Motion.HeroEntrance); err != nil {
		return nil, wrapField("motion.hero_entrance", err)
	}
	if card.RevealEase, err = revealEase(c.Motion.PanelReveal); err != nil {
		return nil, wrapField("motion.panel_reveal", err)
	}
	if c.Motion.ButtonHover <= 0 || c.Motion.ButtonPress <= 0 {
		return nil, configErrorf("motion", "button scales must be positive")
	}

	card.Confetti = DefaultConfettiSettings()
	if c.Confetti.Pieces <= 0 {
		return nil, configErrorf("confetti.pieces", "must be positive, have %d", c.Confetti.Pieces)
	}
	card.Confetti.Pieces = c.Confetti.Pieces
	card.Confetti.Gravity = c.Confetti.Gravity
	card.Confetti.FillTime = c.Confetti.FillTime
	if len(c.Confetti.Colors) > 0 {
		card.Confetti.Colors = card.Confetti.Colors[:0:0]
		for i, hex := range c.Confetti.Colors {
			col, err := ParseHexColor(hex)
			if err != nil {
				return nil, &ConfigError{Field: fmt.Sprintf("confetti.colors[%d]", i), Reason: err.Error()}
			}
			card.Confetti.Colors = append(card.Confetti.Colors, col)
		}
	}
	return card, nil
}

func revealEase(r RevealConfig) (ease.TweenFunc, error) {
	if r.Duration <= 0 {
		return nil, configErrorf("duration", "must be positive, have %v", r.Duration)
	}
	if r.Delay < 0 {
		return nil, configErrorf("delay", "negative delay %v", r.Delay)
	}
	fn, err := LookupEase(r.Ease)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		fn = ease.Linear
	}
	return fn, nil
}

// wrapField prefixes a ConfigError's field with the document path it came
// from.
func wrapField(field string, err error) error {
	var ce *ConfigError
	if errors.As(err, &ce) {
		reason := ce.Reason
		if ce.Field != "" {
			reason = ce.Field + ": " + reason
		}
		return &ConfigError{Field: field, Reason: reason}
	}
	return fmt.Errorf("%s: %w", field, err)
}
