// Command okfield renders an Oklab color field to a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/okfield"

	// Enable GPU acceleration when a device is available.
	_ "github.com/gogpu/okfield/gpu"
)

func main() {
	var (
		width    = flag.Int("width", 1920, "image width")
		height   = flag.Int("height", 1080, "image height")
		progress = flag.Float64("progress", 1.0, "Voronoi blend progress in [0, 1]")
		palette  = flag.String("palette", "", "palette file (one hex color per line)")
		variant  = flag.String("variant", "wallpaper", "field variant: wallpaper or swatch")
		output   = flag.String("output", "field.png", "output file")
		thumb    = flag.String("thumb", "", "also write a WxH thumbnail, e.g. 480x270")
		workers  = flag.Int("workers", 0, "CPU worker count (0 = GOMAXPROCS)")
		cpu      = flag.Bool("cpu", false, "force the software path")
		verbose  = flag.Bool("v", false, "enable log output")
	)
	flag.Parse()

	if *verbose {
		okfield.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	var pal okfield.Palette
	if *palette != "" {
		f, err := os.Open(*palette)
		if err != nil {
			log.Fatalf("Failed to open palette: %v", err)
		}
		pal, err = okfield.ReadPalette(f)
		_ = f.Close()
		if err != nil {
			log.Fatalf("Failed to read palette: %v", err)
		}
	}

	var opts []okfield.Option
	if *workers > 0 {
		opts = append(opts, okfield.WithWorkers(*workers))
	}
	if *cpu {
		sw := okfield.NewSoftwareRenderer(*workers)
		defer sw.Close()
		opts = append(opts, okfield.WithRenderer(sw))
	}

	var (
		pm  *okfield.Pixmap
		err error
	)
	switch *variant {
	case "wallpaper":
		pm, err = okfield.Render(*width, *height, pal, float32(*progress), opts...)
	case "swatch":
		pm, err = okfield.RenderGradient(*width, *height, opts...)
	default:
		log.Fatalf("Unknown variant %q (want wallpaper or swatch)", *variant)
	}
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	if err := pm.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Field saved to %s (%dx%d, %d palette colors)\n", *output, *width, *height, len(pal))

	if *thumb != "" {
		var tw, th int
		if _, err := fmt.Sscanf(*thumb, "%dx%d", &tw, &th); err != nil || tw <= 0 || th <= 0 {
			log.Fatalf("Invalid thumb size %q (want WxH)", *thumb)
		}
		thumbPath := *output + ".thumb.png"
		if err := saveImagePNG(thumbPath, pm.Scale(tw, th)); err != nil {
			log.Fatalf("Failed to save thumbnail: %v", err)
		}
		log.Printf("Thumbnail saved to %s (%dx%d)\n", thumbPath, tw, th)
	}
}

func saveImagePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path) //nolint:gosec // user-provided output path
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return png.Encode(f, img)
}
