package project

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"tileset-composer/internal/canvas"
	"tileset-composer/internal/tileset"
)

// writeTileset writes a w×h PNG where every 48px tile has its own color.
func writeTileset(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col, row := x/tileset.TileSize, y/tileset.TileSize
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(col * 15), G: uint8(row * 15), B: 128, A: 255})
		}
	}
	return encodePNG(t, dir, name, img)
}

// writeShadowTileset is writeTileset with translucent pixels: the first row
// runs through every alpha from 0 to 255 and the rest cycle through low
// alpha values.
func writeShadowTileset(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8(x % 256)
			if y > 0 {
				a = uint8((x + 3*y) % 32)
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 201, G: uint8(77 + y%50), B: uint8(13 + x%40), A: a})
		}
	}
	return encodePNG(t, dir, name, img)
}

func encodePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestOpenDetectsType(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		w, h     int
		wantType string
		wantMsg  string
		units    int
	}{
		{768, 384, "A3", "A3", 32},
		{768, 576, "A2", "A2", 32},
		{768, 720, "A4", "A4", 48},
		{384, 768, "A5", "A5", 128},
		{768, 768, "B", "B-E", 256},
	}
	for _, tt := range tests {
		t.Run(tt.wantType, func(t *testing.T) {
			path := writeTileset(t, dir, tt.wantType+".png", tt.w, tt.h)
			res, err := Open(path, "")
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if res.TypeName != tt.wantType || res.Message != tt.wantMsg {
				t.Errorf("got %s (%s), want %s (%s)", res.TypeName, res.Message, tt.wantType, tt.wantMsg)
			}
			if n := res.Canvas.Placements().Len(); n != tt.units {
				t.Errorf("placed %d units, want %d", n, tt.units)
			}
		})
	}
}

func TestOpenExplicitType(t *testing.T) {
	path := writeTileset(t, t.TempDir(), "a1.png", 768, 576)
	res, err := Open(path, "A1")
	if err != nil {
		t.Fatal(err)
	}
	if res.TypeName != "A1" || res.Canvas.Placements().Len() != 16 {
		t.Errorf("got %s with %d units", res.TypeName, res.Canvas.Placements().Len())
	}

	if _, err := Open(path, "Z9"); !errors.Is(err, tileset.ErrUnknownType) {
		t.Errorf("unknown type error = %v", err)
	}
}

func TestOpenUnknownDimensions(t *testing.T) {
	path := writeTileset(t, t.TempDir(), "odd.png", 100, 100)
	_, err := Open(path, "")
	var ute *tileset.UnknownTypeError
	if !errors.As(err, &ute) || ute.Width != 100 || ute.Height != 100 {
		t.Fatalf("error = %v, want UnknownTypeError for 100×100", err)
	}
	if !errors.Is(err, tileset.ErrUnknownType) {
		t.Error("error should match ErrUnknownType")
	}
}

func TestOpenExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name  string
		w, h  int
		write func(*testing.T, string, string, int, int) string
	}{
		{"A3 opaque", 768, 384, writeTileset},
		{"A4 opaque", 768, 720, writeTileset},
		{"A5 opaque", 384, 768, writeTileset},
		{"B translucent", 768, 768, writeShadowTileset},
		{"A2 translucent", 768, 576, writeShadowTileset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.write(t, dir, "in.png", tt.w, tt.h)
			res, err := Open(in, "")
			if err != nil {
				t.Fatal(err)
			}

			out, err := Export(res.Canvas, filepath.Join(dir, "out"))
			if err != nil {
				t.Fatal(err)
			}
			if filepath.Ext(out) != ".png" {
				t.Errorf("export path %s lacks .png", out)
			}

			want, got := readPNG(t, in), readPNG(t, out)
			if got.Bounds() != want.Bounds() {
				t.Fatalf("bounds = %v, want %v", got.Bounds(), want.Bounds())
			}
			mismatched := 0
			for y := 0; y < tt.h; y++ {
				for x := 0; x < tt.w; x++ {
					g := color.NRGBAModel.Convert(got.At(x, y)).(color.NRGBA)
					w := color.NRGBAModel.Convert(want.At(x, y)).(color.NRGBA)
					if g != w {
						if mismatched < 5 {
							t.Errorf("pixel (%d,%d) = %v, want %v", x, y, g, w)
						}
						mismatched++
					}
				}
			}
			if mismatched > 0 {
				t.Errorf("%d pixel(s) differ", mismatched)
			}
		})
	}
}

func TestExportEmptyCanvas(t *testing.T) {
	c := canvas.New(tileset.MustLookup("B"))
	if _, err := Export(c, filepath.Join(t.TempDir(), "x.png")); !errors.Is(err, ErrEmptyCanvas) {
		t.Errorf("Export of empty canvas = %v", err)
	}

	path, err := WriteImage(c, filepath.Join(t.TempDir(), "blank.PNG"))
	if err != nil {
		t.Fatal(err)
	}
	img := readPNG(t, path)
	if img.Bounds().Dx() != 768 || img.Bounds().Dy() != 768 {
		t.Errorf("blank size = %v", img.Bounds())
	}
	if _, _, _, a := img.At(10, 10).RGBA(); a != 0 {
		t.Error("blank canvas should be transparent")
	}
}

func TestWritePNGCreatesDirs(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.SetNRGBA(1, 1, color.NRGBA{R: 9, G: 8, B: 7, A: 6})

	path, err := WritePNG(img, filepath.Join(t.TempDir(), "previews", "deep", "shot"))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "shot.png" {
		t.Errorf("WritePNG path = %s", path)
	}
	got := readPNG(t, path)
	if got.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if c := color.NRGBAModel.Convert(got.At(1, 1)); c != img.NRGBAAt(1, 1) {
		t.Errorf("pixel = %v, want %v", c, img.NRGBAAt(1, 1))
	}

	if _, err := WritePNG(img, filepath.Join(path, "under-a-file")); err == nil {
		t.Error("writing below a regular file should fail")
	}
}

func TestSuggestedName(t *testing.T) {
	if got := SuggestedName("A4"); got != "Tileset_A4.png" {
		t.Errorf("SuggestedName = %q", got)
	}
	if got := WithPNGExt("x.png"); got != "x.png" {
		t.Errorf("WithPNGExt kept = %q", got)
	}
	if got := WithPNGExt("x.jpg"); got != "x.jpg.png" {
		t.Errorf("WithPNGExt appended = %q", got)
	}
}
