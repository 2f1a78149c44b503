// Package mochi is a scroll-driven animated greeting card engine.
//
// A card is one long scrollable page over a fixed background model. Scroll
// position is turned into a progress value in [0, 1], progress is mapped
// through piecewise curves into presentation values (opacities, parallax
// offsets), and a composer turns them, together with the loading lifecycle
// and the celebration effect, into a [Frame] that a host draws.
//
// Everything in this package is pure and single-threaded. Hosts (see
// mochi/ebitenui and mochi/termui) own the window, feed input into the
// [Session] and call [Session.Update] once per frame.
//
// # Quick start
//
//	card, err := mochi.DefaultConfig().Compile()
//	if err != nil {
//		log.Fatal(err)
//	}
//	vp := mochi.NewManualViewport(1280, 720)
//	s, err := mochi.NewSession(card, vp, mochi.MonoMeasurer{CellWidth: 8, CellHeight: 16})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer s.Close()
//
//	s.AssetReady()                // background model finished loading
//	s.Update(time.Second / 60)    // once per frame
//	frame := s.Frame()            // draw it
//
// # Components
//
// [ViewportTracker] republishes the host window size. [ScrollProgressTracker]
// follows a [ScrollSource] (normally the [Scroller]) and an [ElementGeometry]
// (normally the [Layout]) and reports progress between two
// [Intersection]s. [Curve] maps progress or time to values, with optional
// easing from [gween]. [Lifecycle] moves from Loading to Ready once after the
// asset signal and a settle delay, and latches the celebration. [Compose]
// builds the frame.
//
// # Configuration
//
// Cards are YAML documents decoded over an embedded default; see
// [ParseConfig] and [Config.Compile]. All violations are reported as
// [*ConfigError], matched by [ErrInvalidConfig].
//
// # Debugging
//
// [SetDebugMode] turns on "[mochi]" diagnostics on stderr. A [ScriptRunner]
// replays JSON scripts of scroll, click and screenshot steps against a
// session for automated runs.
//
// [gween]: https://github.com/tanema/gween
package mochi
