// Command cagdemo runs a boolean operation on two built-in sample
// shapes and writes the result as a PNG coverage image.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/cag"
	"github.com/gogpu/cag/internal/raster"
)

var (
	output  string
	size    int
	verbose bool
)

func main() {
	root := &cobra.Command{
		Use:   "cagdemo",
		Short: "Demonstrate constructive area geometry on two sample shapes",
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				cag.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}
	root.PersistentFlags().StringVarP(&output, "output", "o", "cagdemo.png", "output PNG file")
	root.PersistentFlags().IntVar(&size, "size", 512, "image width and height")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	for _, op := range []struct {
		name  string
		short string
		fn    func(a, b *cag.Shape) (*cag.Shape, error)
	}{
		{"union", "Region covered by either shape", cag.Union},
		{"intersect", "Region covered by both shapes", cag.Intersect},
		{"subtract", "Region covered by the blob but not the star", cag.Subtract},
		{"xor", "Region covered by exactly one shape", cag.Xor},
	} {
		fn := op.fn
		root.AddCommand(&cobra.Command{
			Use:   op.name,
			Short: op.short,
			RunE: func(*cobra.Command, []string) error {
				return run(fn)
			},
		})
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(op func(a, b *cag.Shape) (*cag.Shape, error)) error {
	s := float64(size)
	a := sampleBlob(s)
	b := sampleStar(s)

	result, err := op(a, b)
	if err != nil {
		return fmt.Errorf("combining shapes: %w", err)
	}

	mask := raster.Mask(result, size, size)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := mask.AlphaAt(x, y).A
			img.SetRGBA(x, y, color.RGBA{
				R: 255 - v, G: 255 - v/3, B: 255, A: 255,
			})
		}
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", output, err)
	}
	fmt.Printf("wrote %s (%dx%d, area %.1f)\n", output, size, size, math.Abs(result.Area()))
	return nil
}

// sampleBlob is a rounded region mixing cubics and an arc.
func sampleBlob(s float64) *cag.Shape {
	return cag.NewBuilder().
		MoveTo(0.2*s, 0.5*s).
		CubicTo(0.2*s, 0.2*s, 0.5*s, 0.15*s, 0.6*s, 0.3*s).
		ArcTo(0.6*s, 0.5*s, 0.2*s, -math.Pi/2, math.Pi).
		CubicTo(0.5*s, 0.85*s, 0.2*s, 0.8*s, 0.2*s, 0.5*s).
		Close().
		Shape()
}

// sampleStar is a five-pointed star overlapping the blob.
func sampleStar(s float64) *cag.Shape {
	b := cag.NewBuilder()
	cx, cy := 0.55*s, 0.5*s
	outer, inner := 0.35*s, 0.15*s
	for i := 0; i < 10; i++ {
		angle := -math.Pi/2 + float64(i)*math.Pi/5
		r := outer
		if i%2 == 1 {
			r = inner
		}
		x := cx + r*math.Cos(angle)
		y := cy + r*math.Sin(angle)
		if i == 0 {
			b.MoveTo(x, y)
		} else {
			b.LineTo(x, y)
		}
	}
	return b.Close().Shape()
}
