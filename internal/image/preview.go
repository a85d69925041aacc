package image

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"tileset-composer/pkg/geometry"
)

// Scale enlarges img by an integer factor with nearest-neighbour
// sampling so pixel art stays crisp.
func Scale(img image.Image, factor int) *image.NRGBA {
	if factor < 1 {
		factor = 1
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}

// DrawGrid draws one-pixel grid lines every step pixels, blended over dst.
func DrawGrid(dst *image.NRGBA, step int, c color.Color) {
	if step <= 0 {
		return
	}
	b := dst.Bounds()
	for x := b.Min.X; x < b.Max.X; x += step {
		fill(dst, image.Rect(x, b.Min.Y, x+1, b.Max.Y), c)
	}
	for y := b.Min.Y; y < b.Max.Y; y += step {
		fill(dst, image.Rect(b.Min.X, y, b.Max.X, y+1), c)
	}
}

// Outline draws a rectangle border of the given thickness inside r.
func Outline(dst *image.NRGBA, r geometry.RectInt, thickness int, c color.Color) {
	ir := r.Image()
	fill(dst, image.Rect(ir.Min.X, ir.Min.Y, ir.Max.X, ir.Min.Y+thickness), c)
	fill(dst, image.Rect(ir.Min.X, ir.Max.Y-thickness, ir.Max.X, ir.Max.Y), c)
	fill(dst, image.Rect(ir.Min.X, ir.Min.Y, ir.Min.X+thickness, ir.Max.Y), c)
	fill(dst, image.Rect(ir.Max.X-thickness, ir.Min.Y, ir.Max.X, ir.Max.Y), c)
}

func fill(dst *image.NRGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Over)
}

// Checker colors used behind transparent pixels in previews.
var (
	CheckerLight = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	CheckerDark  = color.NRGBA{R: 204, G: 204, B: 204, A: 255}
)

// Checkerboard returns an opaque width×height checker pattern with
// squares of the given size, light square first.
func Checkerboard(width, height, size int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	if size <= 0 {
		size = 8
	}
	for y := 0; y < height; y += size {
		for x := 0; x < width; x += size {
			c := CheckerLight
			if (x/size+y/size)%2 == 1 {
				c = CheckerDark
			}
			draw.Draw(out, image.Rect(x, y, x+size, y+size).Intersect(out.Bounds()),
				&image.Uniform{C: c}, image.Point{}, draw.Src)
		}
	}
	return out
}
