// Package raster renders shape coverage masks. It backs the pixel
// comparison harness in the package tests and the demo binary; the
// library itself never rasterizes.
package raster

import (
	"image"

	"golang.org/x/image/vector"

	"github.com/gogpu/cag"
)

// flattenTolerance is the maximum curve-to-polyline deviation, in
// pixels, used when rasterizing.
const flattenTolerance = 0.05

// Mask rasterizes the shape's non-zero coverage into a w x h alpha
// image.
func Mask(s *cag.Shape, w, h int) *image.Alpha {
	r := vector.NewRasterizer(w, h)
	for _, poly := range s.Flatten(flattenTolerance) {
		if len(poly) < 2 {
			continue
		}
		r.MoveTo(float32(poly[0].X), float32(poly[0].Y))
		for _, p := range poly[1:] {
			r.LineTo(float32(p.X), float32(p.Y))
		}
		r.ClosePath()
	}
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// Overlay combines coverage masks of equal size by per-pixel maximum:
// the rasterization of drawing each shape independently.
func Overlay(masks ...*image.Alpha) *image.Alpha {
	if len(masks) == 0 {
		return image.NewAlpha(image.Rect(0, 0, 0, 0))
	}
	out := image.NewAlpha(masks[0].Bounds())
	copy(out.Pix, masks[0].Pix)
	for _, m := range masks[1:] {
		for i, v := range m.Pix {
			if v > out.Pix[i] {
				out.Pix[i] = v
			}
		}
	}
	return out
}

// MeanDiff returns the mean per-pixel absolute difference of two masks
// of equal size, in [0, 1].
func MeanDiff(a, b *image.Alpha) float64 {
	if len(a.Pix) == 0 {
		return 0
	}
	var sum float64
	for i := range a.Pix {
		d := int(a.Pix[i]) - int(b.Pix[i])
		if d < 0 {
			d = -d
		}
		sum += float64(d)
	}
	return sum / (255 * float64(len(a.Pix)))
}
