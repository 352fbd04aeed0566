// Snapshot tool - runs the hero scene in a hidden window and writes one frame to a PNG.
//
// Usage: go run ./cmd/snapshot -ticks 120 -px 640 -py 360 -out hero.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/veil/config"
	"github.com/pthm-cable/veil/renderer"
	"github.com/pthm-cable/veil/renderer/window"
	"github.com/pthm-cable/veil/scene"
)

// captureBackend renders the last tick into a texture instead of the screen.
type captureBackend struct {
	*window.Backend
	width, height int
	captureTick   int64
	outPath       string
	exported      bool
}

func (b *captureBackend) Submit(f *renderer.Frame) {
	if f.Tick < b.captureTick {
		return
	}

	target := rl.LoadRenderTexture(int32(b.width), int32(b.height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	b.Render(f)
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)
	b.exported = rl.ExportImage(*img, b.outPath)
	rl.UnloadImage(img)
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "hero.png", "Output PNG path")
	width := flag.Int("width", 1280, "Render width")
	height := flag.Int("height", 720, "Render height")
	ticks := flag.Int64("ticks", 120, "Ticks to simulate before capturing")
	px := flag.Float64("px", -1, "Pointer x in pixels (-1 = center)")
	py := flag.Float64("py", -1, "Pointer y in pixels (-1 = center)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.Screen.Width, cfg.Screen.Height = *width, *height
	cfg.Screen.TargetFPS = 0
	if *ticks < 1 {
		*ticks = 1
	}

	wb := window.New(0)
	wb.Hidden = true
	b := &captureBackend{
		Backend:     wb,
		width:       *width,
		height:      *height,
		captureTick: *ticks,
		outPath:     *outPath,
	}

	s, err := scene.New(cfg, b, scene.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to mount scene: %v\n", err)
		os.Exit(1)
	}
	if _, ok := s.Backend().(renderer.Nop); ok {
		s.Unload()
		fmt.Fprintf(os.Stderr, "Graphics unavailable, nothing rendered\n")
		os.Exit(1)
	}

	x, y := float32(*px), float32(*py)
	if x < 0 {
		x = float32(*width) / 2
	}
	if y < 0 {
		y = float32(*height) / 2
	}

	// Fixed-step ticks so the capture is reproducible.
	dt := cfg.Derived.TargetDT
	for s.Tick() < *ticks {
		s.PointerMove(x, y)
		s.Update(dt)
		s.Draw()
	}
	s.Unload()

	if b.exported {
		fmt.Printf("Frame rendered to: %s (%dx%d, tick %d)\n", *outPath, *width, *height, s.Tick())
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
