// Command okfield-preview shows a live, animated color field in a window.
//
// The blend progress ping-pongs between 0 and 1. When a palette file is
// given it is watched for changes and reloaded on save, so palettes can be
// tuned with the preview running.
package main

import (
	"flag"
	"image"
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/okfield"
)

func main() {
	var (
		width   = flag.Int("width", 800, "viewport width")
		height  = flag.Int("height", 500, "viewport height")
		palette = flag.String("palette", "", "palette file (one hex color per line), watched for changes")
		period  = flag.Float64("period", 4.0, "seconds per blend sweep")
	)
	flag.Parse()

	g := &previewGame{
		width:  *width,
		height: *height,
		pm:     okfield.NewPixmap(*width, *height),
		step:   float32(1.0 / (60.0 * *period)),
		dir:    1,
	}
	g.renderer = okfield.NewSoftwareRenderer(0)
	defer g.renderer.Close()

	if *palette != "" {
		if err := g.loadPalette(*palette); err != nil {
			log.Fatalf("Failed to load palette: %v", err)
		}
		watcher, err := watchPalette(*palette, g)
		if err != nil {
			log.Fatalf("Failed to watch palette: %v", err)
		}
		defer func() { _ = watcher.Close() }()
	}

	ebiten.SetWindowTitle("okfield preview")
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("Preview failed: %v", err)
	}
}

type previewGame struct {
	width, height int
	renderer      *okfield.SoftwareRenderer
	pm            *okfield.Pixmap
	img           *image.RGBA
	fbImg         *ebiten.Image

	mu      sync.Mutex
	palette okfield.Palette

	progress float32
	step     float32
	dir      float32
}

// loadPalette reads the palette file and swaps it in under the lock.
func (g *previewGame) loadPalette(path string) error {
	f, err := os.Open(path) //nolint:gosec // user-provided palette path
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	pal, err := okfield.ReadPalette(f)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.palette = pal
	g.mu.Unlock()
	return nil
}

func (g *previewGame) Update() error {
	// Ping-pong the blend progress.
	g.progress += g.step * g.dir
	if g.progress >= 1 {
		g.progress = 1
		g.dir = -1
	} else if g.progress <= 0 {
		g.progress = 0
		g.dir = 1
	}

	g.mu.Lock()
	pal := g.palette
	g.mu.Unlock()

	_, err := okfield.Render(g.width, g.height, pal, g.progress,
		okfield.WithPixmap(g.pm),
		okfield.WithRenderer(g.renderer))
	return err
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(g.width, g.height)
	}
	g.img = g.pm.ToImage()
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *previewGame) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// watchPalette reloads the palette whenever the file is written. Editors
// that replace the file on save emit Create events, so both are handled.
func watchPalette(path string, g *previewGame) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					if err := g.loadPalette(path); err != nil {
						log.Printf("Palette reload failed: %v", err)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Palette watcher error: %v", err)
			}
		}
	}()

	return watcher, nil
}
