package mochi

import (
	"math"
	"math/rand/v2"
	"time"
)

// ConfettiShape is how a piece is drawn.
type ConfettiShape uint8

const (
	ConfettiSquare ConfettiShape = iota // w x h rectangle
	ConfettiCircle                      // disc of diameter w
	ConfettiStrip                       // thin w x h/3 strip
)

// ConfettiPiece is the drawable state of one piece, in viewport pixels.
type ConfettiPiece struct {
	X, Y          float64
	Width, Height float64
	Angle         float64 // radians
	Color         Color
	Shape         ConfettiShape

	vx, vy float64
	spin   float64
}

// ConfettiSettings controls how pieces are spawned and move. Velocities and
// accelerations are per frame at 60 updates per second and are scaled by dt.
type ConfettiSettings struct {
	// Pieces is the pool size; once full, fallen pieces are recycled.
	Pieces int
	// Gravity is added to each piece's vertical velocity every frame.
	Gravity float64
	// Wind is added to each piece's horizontal velocity every frame.
	Wind float64
	// Friction multiplies both velocities every frame.
	Friction float64
	// InitialVelocity bounds the spawn velocity: X in [-X, X], Y in [0, Y].
	InitialVelocity Vec2
	// Width and Height bound the piece size.
	Width, Height Range
	// Spin bounds the rotation speed in radians per frame.
	Spin Range
	// Colors is the palette pieces pick from.
	Colors []Color
	// FillTime is how long it takes to emit the whole pool.
	FillTime time.Duration
}

// DefaultConfettiSettings matches the card's celebration burst.
func DefaultConfettiSettings() ConfettiSettings {
	return ConfettiSettings{
		Pieces:          200,
		Gravity:         0.15,
		Friction:        0.99,
		InitialVelocity: Vec2{X: 4, Y: 10},
		Width:           Range{5, 20},
		Height:          Range{5, 10},
		Spin:            Range{-0.2, 0.2},
		Colors: []Color{
			{1, 0.718, 0.773, 1},     // #FFB7C5
			{1, 1, 1, 1},             // #FFFFFF
			{0.290, 0.231, 0.196, 1}, // #4A3B32
			{1, 0.820, 0.863, 1},     // #FFD1DC
			{0.902, 0.757, 0.694, 1}, // #E6C1B1
		},
		FillTime: 5 * time.Second,
	}
}

// Confetti is a CPU-simulated pool of falling pieces that covers the
// viewport. Once started it never stops: pieces that fall below the viewport
// are respawned above it.
type Confetti struct {
	cfg       ConfettiSettings
	pieces    []ConfettiPiece
	alive     int
	emitAccum float64
	active    bool
	area      Size
	rng       *rand.Rand
}

// NewConfetti creates an inactive pool. rng may be nil for a randomly seeded
// source.
func NewConfetti(cfg ConfettiSettings, rng *rand.Rand) *Confetti {
	n := cfg.Pieces
	if n <= 0 {
		n = 200
	}
	if len(cfg.Colors) == 0 {
		cfg.Colors = []Color{ColorWhite}
	}
	if cfg.Friction <= 0 {
		cfg.Friction = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Confetti{cfg: cfg, pieces: make([]ConfettiPiece, n), rng: rng}
}

// Start begins emitting into the given area.
func (c *Confetti) Start(area Size) {
	c.area = area
	c.active = true
}

// Active reports whether the pool is emitting.
func (c *Confetti) Active() bool {
	return c.active
}

// Area returns the viewport the pieces are confined to.
func (c *Confetti) Area() Size {
	return c.area
}

// AliveCount returns the number of live pieces.
func (c *Confetti) AliveCount() int {
	return c.alive
}

// Pieces returns the live pieces. The slice is reused by Update and MUST NOT
// be retained across frames.
func (c *Confetti) Pieces() []ConfettiPiece {
	return c.pieces[:c.alive]
}

// Resize confines pieces to a new viewport. Pieces outside the new width wrap
// back in on their next respawn.
func (c *Confetti) Resize(area Size) {
	c.area = area
}

// Update advances the simulation by dt seconds.
func (c *Confetti) Update(dt float64) {
	if !c.active || dt <= 0 {
		return
	}
	f := dt * 60
	drag := math.Pow(c.cfg.Friction, f)

	for i := 0; i < c.alive; i++ {
		p := &c.pieces[i]
		p.vx += c.cfg.Wind * f
		p.vy += c.cfg.Gravity * f
		p.vx *= drag
		p.vy *= drag
		p.X += p.vx * f
		p.Y += p.vy * f
		p.Angle += p.spin * f

		if p.Y > c.area.Height+p.Height || p.X < -p.Width*2 || p.X > c.area.Width+p.Width*2 {
			c.respawn(p)
		}
	}

	if c.alive < len(c.pieces) {
		fill := c.cfg.FillTime.Seconds()
		if fill <= 0 {
			c.emitAccum += float64(len(c.pieces))
		} else {
			c.emitAccum += float64(len(c.pieces)) * dt / fill
		}
		for c.emitAccum >= 1.0 && c.alive < len(c.pieces) {
			c.emitAccum -= 1.0
			c.spawn()
		}
	}
}

// spawn initializes the piece at slot c.alive and increments alive.
func (c *Confetti) spawn() {
	p := &c.pieces[c.alive]
	p.Width = c.cfg.Width.Random(c.rng)
	p.Height = c.cfg.Height.Random(c.rng)
	p.Shape = ConfettiShape(c.rng.IntN(3))
	p.Color = c.cfg.Colors[c.rng.IntN(len(c.cfg.Colors))]
	c.respawn(p)
	c.alive++
}

// respawn places p just above the top edge at a random x and gives it a
// fresh velocity.
func (c *Confetti) respawn(p *ConfettiPiece) {
	p.X = c.rng.Float64() * c.area.Width
	p.Y = -p.Height
	p.vx = Range{-c.cfg.InitialVelocity.X, c.cfg.InitialVelocity.X}.Random(c.rng)
	p.vy = Range{0, c.cfg.InitialVelocity.Y}.Random(c.rng)
	p.Angle = c.rng.Float64() * 2 * math.Pi
	p.spin = c.cfg.Spin.Random(c.rng)
}
