// Mochi opens a scroll-driven birthday card in a window, or in the terminal
// with -tui. Without -config it shows the built-in card.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/skip2/go-qrcode"

	"github.com/phanxgames/mochi"
	"github.com/phanxgames/mochi/asset"
	"github.com/phanxgames/mochi/chime"
	"github.com/phanxgames/mochi/ebitenui"
	"github.com/phanxgames/mochi/termui"
)

const qrSize = 256

func main() {
	configPath := flag.String("config", "", "card YAML file (default: built-in card)")
	debug := flag.Bool("debug", false, "log [mochi] diagnostics to stderr and show FPS")
	tui := flag.Bool("tui", false, "run in the terminal instead of a window")
	scriptPath := flag.String("script", "", "JSON script of scroll, click and screenshot steps")
	qrPath := flag.String("qr", "", "write a PNG QR code of the card's share URL to this path and exit")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	gain := flag.Float64("volume", 0.3, "celebration sound volume, 0 mutes")
	flag.Parse()

	mochi.SetDebugMode(*debug)

	cfg := mochi.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = mochi.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	card, err := cfg.Compile()
	if err != nil {
		log.Fatal(err)
	}

	if *qrPath != "" {
		if cfg.ShareURL == "" {
			log.Fatal("card has no share_url")
		}
		if err := qrcode.WriteFile(cfg.ShareURL, qrcode.Medium, qrSize, *qrPath); err != nil {
			log.Fatalf("write QR code: %v", err)
		}
		log.Printf("wrote %s for %s", *qrPath, cfg.ShareURL)
		return
	}

	var script *mochi.ScriptRunner
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		if script, err = mochi.LoadScript(data); err != nil {
			log.Fatal(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fetcher := &asset.Fetcher{Timeout: cfg.Model.Timeout}
	load := fetcher.Start(ctx, cfg.Model.URL)

	var player *chime.Player
	if *gain > 0 {
		player = chime.NewPlayer(*gain)
	}

	newSession := func(vp mochi.ViewportSource, m mochi.Measurer) (*mochi.Session, error) {
		return mochi.NewSession(card, vp, m)
	}

	if *tui {
		screen, err := tcell.NewScreen()
		if err != nil {
			log.Fatalf("open terminal: %v", err)
		}
		err = termui.Run(ctx, screen, newSession, termui.Options{
			Load:   load,
			Chime:  player,
			Script: script,
		})
		if err != nil && ctx.Err() == nil {
			log.Fatal(err)
		}
		return
	}

	if err := ebitenui.Run(newSession, ebitenui.Options{
		Title:            cfg.Title,
		Width:            *width,
		Height:           *height,
		Load:             load,
		Chime:            player,
		Script:           script,
		ExitOnScriptDone: script != nil,
		ShowFPS:          *debug,
	}); err != nil {
		log.Fatal(err)
	}
}
