// Command layoutdump prints the unit rectangles of every tileset type and
// can draw each layout as a PNG diagram.
package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"

	tsimage "tileset-composer/internal/image"
	"tileset-composer/internal/project"
	"tileset-composer/internal/tileset"
	"tileset-composer/pkg/geometry"
)

var cli struct {
	Types []string `arg:"" optional:"" help:"Types to dump; all when omitted."`
	JSON  bool     `help:"Write JSON instead of text."`
	PNG   string   `name:"png" type:"path" help:"Directory to write one layout diagram per type."`
}

type layout struct {
	Name   string             `json:"name"`
	Width  int                `json:"width"`
	Height int                `json:"height"`
	Units  []geometry.RectInt `json:"units"`
}

// Fill colors per unit shape.
var shapeColors = map[tileset.UnitShape]color.RGBA{
	{Width: 1, Height: 1}: colornames.Lightsteelblue,
	{Width: 2, Height: 2}: colornames.Palegreen,
	{Width: 2, Height: 3}: colornames.Khaki,
	{Width: 6, Height: 3}: colornames.Lightsalmon,
}

func main() {
	kong.Parse(&cli,
		kong.Name("layoutdump"),
		kong.Description("Dumps tileset unit layouts."),
	)

	names := cli.Types
	if len(names) == 0 {
		names = tileset.List()
	}

	var layouts []layout
	for _, name := range names {
		t, err := tileset.LookupChoice(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		layouts = append(layouts, layout{
			Name:   t.Name,
			Width:  t.PixelWidth,
			Height: t.PixelHeight,
			Units:  t.UnitPositions(),
		})

		if cli.PNG != "" {
			if err := writeDiagram(t, cli.PNG); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to write diagram: %v\n", err)
				os.Exit(1)
			}
		}
	}

	if cli.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(layouts); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode: %v\n", err)
			os.Exit(1)
		}
		return
	}

	for _, l := range layouts {
		fmt.Printf("%s %dx%d, %d units\n", l.Name, l.Width, l.Height, len(l.Units))
		for i, r := range l.Units {
			fmt.Printf("  %3d: (%d,%d) %dx%d\n", i, r.X, r.Y, r.Width, r.Height)
		}
	}
}

// writeDiagram fills each unit slot by shape and outlines it.
func writeDiagram(t *tileset.Type, dir string) error {
	img := image.NewNRGBA(image.Rect(0, 0, t.PixelWidth, t.PixelHeight))
	for _, r := range t.UnitPositions() {
		shape := tileset.UnitShape{Width: r.Width / tileset.TileSize, Height: r.Height / tileset.TileSize}
		c, ok := shapeColors[shape]
		if !ok {
			c = colornames.Lightgray
		}
		draw.Draw(img, r.Image(), image.NewUniform(c), image.Point{}, draw.Src)
	}
	tsimage.DrawGrid(img, tileset.TileSize, colornames.Darkgray)
	for _, r := range t.UnitPositions() {
		tsimage.Outline(img, r, 2, colornames.Black)
	}

	path, err := project.WritePNG(img, filepath.Join(dir, t.Name+".png"))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}
