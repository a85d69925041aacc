package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"golang.org/x/image/colornames"

	"tileset-composer/internal/canvas"
	tsimage "tileset-composer/internal/image"
	"tileset-composer/internal/prefs"
	"tileset-composer/internal/project"
	"tileset-composer/internal/recipe"
	"tileset-composer/internal/tileset"
	"tileset-composer/internal/watch"
)

// TypesCmd lists the registered layouts.
type TypesCmd struct{}

func (c *TypesCmd) Run(g *Globals) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGROUP\tSIZE\tGRID\tUNITS\tSHAPES")
	for _, name := range tileset.List() {
		t := tileset.MustLookup(name)
		fmt.Fprintf(w, "%s\t%s\t%d×%d\t%d×%d\t%d\t%v\n",
			t.Name, tileset.DisplayName(t.Name),
			t.PixelWidth, t.PixelHeight,
			t.GridWidth(), t.GridHeight(),
			t.TotalUnits(), t.Shapes())
	}
	return w.Flush()
}

// PositionsCmd prints unit rectangles in layout order.
type PositionsCmd struct {
	Type  string `arg:"" help:"Tileset type (A1-A5, B-E)."`
	Tiles bool   `help:"Print tile cells instead of pixels."`
}

func (c *PositionsCmd) Run(g *Globals) error {
	t, err := tileset.LookupChoice(c.Type)
	if err != nil {
		return err
	}
	for i, r := range t.UnitPositions() {
		if c.Tiles {
			r.X, r.Y = r.X/tileset.TileSize, r.Y/tileset.TileSize
			r.Width, r.Height = r.Width/tileset.TileSize, r.Height/tileset.TileSize
		}
		fmt.Printf("%3d  x=%-4d y=%-4d %d×%d\n", i, r.X, r.Y, r.Width, r.Height)
	}
	return nil
}

// InspectCmd loads an image and summarizes its units.
type InspectCmd struct {
	Image string `arg:"" type:"existingfile" help:"Source image."`
	Type  string `help:"Source layout; detected from the image size when omitted."`
}

func (c *InspectCmd) Run(g *Globals) error {
	src, err := tsimage.Load(c.Image)
	if err != nil {
		return err
	}
	typ, err := sourceType(src, c.Type)
	if err != nil {
		return err
	}
	units := tsimage.Units(src, typ)

	fmt.Printf("%s: %s, %d×%d px\n", filepath.Base(c.Image), src.Format, src.Width(), src.Height())
	switch {
	case typ == nil:
		fmt.Println("layout: none detected, plain 1×1 grid")
	case c.Type == "":
		fmt.Printf("layout: %s (detected)\n", tileset.DisplayName(typ.Name))
	default:
		fmt.Printf("layout: %s\n", typ.Name)
	}

	shapes := make(map[tileset.UnitShape]int)
	tiles := 0
	for _, u := range units {
		shapes[u.Shape()]++
		tiles += len(u.Tiles)
	}
	keys := make([]tileset.UnitShape, 0, len(shapes))
	for s := range shapes {
		keys = append(keys, s)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Width != keys[j].Width {
			return keys[i].Width > keys[j].Width
		}
		return keys[i].Height > keys[j].Height
	})

	fmt.Printf("units: %d (%d tiles)\n", len(units), tiles)
	for _, s := range keys {
		fmt.Printf("  %s: %d\n", s, shapes[s])
	}
	return nil
}

// ComposeCmd applies a recipe and exports the result.
type ComposeCmd struct {
	Recipe string `arg:"" type:"existingfile" help:"Recipe YAML file."`
	Output string `short:"o" help:"Output PNG; overrides the recipe's output."`
	Watch  bool   `short:"w" help:"Rebuild whenever the recipe or a source image changes."`
}

func (c *ComposeCmd) Run(g *Globals) error {
	if !c.Watch {
		return c.compose(g.Prefs)
	}

	r, err := recipe.Load(c.Recipe)
	if err != nil {
		return err
	}
	files := append([]string{c.Recipe}, r.SourcePaths()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("Watch: %d file(s), press Ctrl-C to stop", len(files))
	return watch.Run(ctx, 200*time.Millisecond, files, func() error {
		return c.compose(g.Prefs)
	})
}

func (c *ComposeCmd) compose(p *prefs.Prefs) error {
	out, rep, err := recipe.Compose(c.Recipe, c.Output)
	if rep != nil {
		for _, i := range rep.Rejected {
			fmt.Fprintf(os.Stderr, "placement %d: no matching slot, skipped\n", i)
		}
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d unit(s) placed)\n", out, rep.Placed)

	if r, err := recipe.Load(c.Recipe); err == nil {
		if t, err := tileset.LookupChoice(r.Type); err == nil {
			rememberType(p, t.Name)
		}
	}
	return nil
}

// ReexportCmd opens a finished tileset onto a canvas and exports it.
type ReexportCmd struct {
	Image  string `arg:"" type:"existingfile" help:"Finished tileset image."`
	Output string `short:"o" help:"Output PNG; defaults to Tileset_<type>.png next to the input."`
	Type   string `help:"Tileset type; detected from the image size when omitted."`
}

func (c *ReexportCmd) Run(g *Globals) error {
	res, err := project.Open(c.Image, c.Type)
	if err != nil {
		return err
	}
	output := c.Output
	if output == "" {
		output = filepath.Join(filepath.Dir(c.Image), project.SuggestedName(res.TypeName))
	}
	out, err := project.Export(res.Canvas, output)
	if err != nil {
		return err
	}
	fmt.Printf("opened as %s, %d unit(s); wrote %s\n", res.Message, res.Canvas.Placements().Len(), out)
	rememberType(g.Prefs, res.TypeName)
	return nil
}

// PreviewCmd renders a source image over a checkerboard with unit outlines.
type PreviewCmd struct {
	Image  string `arg:"" type:"existingfile" help:"Source image."`
	Output string `short:"o" required:"" help:"Output PNG."`
	Type   string `help:"Source layout; detected from the image size when omitted."`
	Scale  int    `help:"Integer zoom factor; defaults to the saved preview scale, then 2."`
	Grid   bool   `help:"Draw the 48px tile grid."`
}

func (c *PreviewCmd) Run(g *Globals) error {
	src, err := tsimage.Load(c.Image)
	if err != nil {
		return err
	}
	typ, err := sourceType(src, c.Type)
	if err != nil {
		return err
	}

	w, h := src.Width(), src.Height()
	comp := tsimage.NewComposite(w, h)
	comp.AddLayer(tsimage.Checkerboard(w, h, tileset.TileSize/4), 0, 0)
	comp.AddLayer(src.Image, 0, 0)
	img := comp.Render()

	if c.Grid {
		tsimage.DrawGrid(img, tileset.TileSize, colornames.Lightgray)
	}
	for _, u := range tsimage.Units(src, typ) {
		if !u.IsSingleTile() {
			tsimage.Outline(img, u.SourceRect(), 1, colornames.Crimson)
		}
	}

	scale := c.Scale
	if scale <= 0 {
		scale = g.Prefs.Int(prefs.KeyPreviewScale, 2)
	}
	if scale > 1 {
		img = tsimage.Scale(img, scale)
	}

	out, err := project.WritePNG(img, c.Output)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d×%d)\n", out, img.Bounds().Dx(), img.Bounds().Dy())

	if c.Scale > 0 {
		g.Prefs.SetInt(prefs.KeyPreviewScale, c.Scale)
		if err := g.Prefs.Save(); err != nil {
			log.Printf("Failed to save preferences: %v", err)
		}
	}
	return nil
}

// BlankCmd writes an empty canvas.
type BlankCmd struct {
	Output string `short:"o" help:"Output PNG; defaults to Tileset_<type>.png."`
	Type   string `help:"Tileset type; defaults to the last type used, then B."`
}

func (c *BlankCmd) Run(g *Globals) error {
	name := c.Type
	if name == "" {
		name = g.Prefs.StringWithFallback(prefs.KeyLastType, "B")
	}
	t, err := tileset.LookupChoice(name)
	if err != nil {
		return err
	}
	output := c.Output
	if output == "" {
		output = project.SuggestedName(t.Name)
	}
	out, err := project.WriteImage(canvas.New(t), output)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s, %d×%d)\n", out, t.Name, t.PixelWidth, t.PixelHeight)
	rememberType(g.Prefs, t.Name)
	return nil
}

// sourceType resolves an explicit layout name, or detects one from the
// image size. A nil type means a plain 1×1 grid.
func sourceType(src *tsimage.Source, name string) (*tileset.Type, error) {
	if name != "" {
		return tileset.LookupChoice(name)
	}
	return tsimage.DetectType(src), nil
}

func rememberType(p *prefs.Prefs, name string) {
	if p.String(prefs.KeyLastType) == name {
		return
	}
	p.SetString(prefs.KeyLastType, name)
	if err := p.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}
