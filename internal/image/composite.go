package image

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Composite combines positioned images into a single image of fixed size.
type Composite struct {
	Width     int
	Height    int
	Layers    []*CompositeLayer
	BackColor color.Color
}

// CompositeLayer is one image placed at a pixel offset.
type CompositeLayer struct {
	Image   image.Image
	OffsetX int
	OffsetY int
}

// NewComposite creates a new Composite with a transparent background.
func NewComposite(width, height int) *Composite {
	return &Composite{
		Width:     width,
		Height:    height,
		BackColor: color.Transparent,
	}
}

// AddLayer adds an image to the composite at the given offset.
func (c *Composite) AddLayer(img image.Image, offsetX, offsetY int) {
	c.Layers = append(c.Layers, &CompositeLayer{
		Image:   img,
		OffsetX: offsetX,
		OffsetY: offsetY,
	})
}

// Render produces the final composited image. Layers are drawn in the
// order they were added; parts outside the composite are clipped.
func (c *Composite) Render() *image.NRGBA {
	result := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))

	if _, _, _, a := c.BackColor.RGBA(); a != 0 {
		draw.Draw(result, result.Bounds(), &image.Uniform{C: c.BackColor}, image.Point{}, draw.Src)
	}

	for _, cl := range c.Layers {
		if cl.Image == nil {
			continue
		}
		c.compositeLayer(result, cl)
	}
	return result
}

func (c *Composite) compositeLayer(dst *image.NRGBA, cl *CompositeLayer) {
	src := cl.Image
	b := src.Bounds()
	at := image.Pt(cl.OffsetX, cl.OffsetY)
	r := image.Rectangle{Min: at, Max: at.Add(b.Size())}
	draw.Draw(dst, r, src, b.Min, draw.Over)
}
