package image

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"tileset-composer/internal/tileset"
)

func writePNG(t *testing.T, dir, name string, width, height int, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

var green = color.NRGBA{G: 255, A: 255}

func TestLoadSingleTileImage(t *testing.T) {
	path := writePNG(t, t.TempDir(), "single.png", 48, 48, green)
	units, err := LoadUnits(path, nil)
	if err != nil {
		t.Fatalf("LoadUnits: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	tl := units[0].Tiles[0]
	if tl.X != 0 || tl.Y != 0 || tl.Image.Bounds().Dx() != 48 || tl.Image.Bounds().Dy() != 48 {
		t.Errorf("unexpected tile %+v", tl)
	}
}

func TestSimpleGridRowMajor(t *testing.T) {
	path := writePNG(t, t.TempDir(), "grid.png", 96, 96, green)
	units, err := LoadUnits(path, nil)
	if err != nil {
		t.Fatalf("LoadUnits: %v", err)
	}
	tiles := Tiles(units)
	want := [][2]int{{0, 0}, {48, 0}, {0, 48}, {48, 48}}
	if len(tiles) != len(want) {
		t.Fatalf("expected %d tiles, got %d", len(want), len(tiles))
	}
	for i, w := range want {
		if tiles[i].X != w[0] || tiles[i].Y != w[1] {
			t.Errorf("tile %d at (%d,%d), want (%d,%d)", i, tiles[i].X, tiles[i].Y, w[0], w[1])
		}
		if units[i].GridX != w[0]/48 || units[i].GridY != w[1]/48 {
			t.Errorf("unit %d grid (%d,%d), want (%d,%d)", i, units[i].GridX, units[i].GridY, w[0]/48, w[1]/48)
		}
	}
}

func TestSourceIndexIncrements(t *testing.T) {
	path := writePNG(t, t.TempDir(), "grid.png", 192, 192, green)
	units, err := LoadUnits(path, nil)
	if err != nil {
		t.Fatalf("LoadUnits: %v", err)
	}
	for i, tl := range Tiles(units) {
		if tl.SourceIndex != i {
			t.Fatalf("tile %d has SourceIndex %d", i, tl.SourceIndex)
		}
	}
}

func TestRemainderPixelsTruncated(t *testing.T) {
	path := writePNG(t, t.TempDir(), "odd.png", 100, 60, green)
	units, err := LoadUnits(path, nil)
	if err != nil {
		t.Fatalf("LoadUnits: %v", err)
	}
	if len(units) != 2 {
		t.Errorf("100×60 should slice into 2 tiles, got %d", len(units))
	}
}

func TestAutoDetectA2(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a2.png", 768, 576, green)
	units, err := LoadUnits(path, nil)
	if err != nil {
		t.Fatalf("LoadUnits: %v", err)
	}
	if len(units) != 32 {
		t.Fatalf("expected 32 units, got %d", len(units))
	}
	for i, u := range units {
		if u.GridWidth != 2 || u.GridHeight != 3 {
			t.Errorf("unit %d is %d×%d, want 2×3", i, u.GridWidth, u.GridHeight)
		}
		if u.PixelWidth() != 96 || u.PixelHeight() != 144 {
			t.Errorf("unit %d is %d×%d px, want 96×144", i, u.PixelWidth(), u.PixelHeight())
		}
		if len(u.Tiles) != 6 {
			t.Errorf("unit %d has %d tiles, want 6", i, len(u.Tiles))
		}
		for _, tl := range u.Tiles {
			if tl.Unit() != u {
				t.Fatalf("tile in unit %d is linked to another unit", i)
			}
		}
	}
}

func TestExplicitTypes(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantUnits     int
		wantW, wantH  int
	}{
		{"A3", 768, 384, 32, 2, 2},
		{"A5", 384, 768, 128, 1, 1},
		{"A1", 768, 576, 16, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePNG(t, t.TempDir(), tt.name+".png", tt.width, tt.height, green)
			units, err := LoadUnits(path, tileset.MustLookup(tt.name))
			if err != nil {
				t.Fatalf("LoadUnits: %v", err)
			}
			if len(units) != tt.wantUnits {
				t.Fatalf("expected %d units, got %d", tt.wantUnits, len(units))
			}
			for _, u := range units {
				if tt.wantW != 0 && u.GridWidth != tt.wantW {
					t.Errorf("unit width %d, want %d", u.GridWidth, tt.wantW)
				}
				if u.GridHeight != tt.wantH {
					t.Errorf("unit height %d, want %d", u.GridHeight, tt.wantH)
				}
				if !u.Complete() {
					t.Errorf("unit at (%d,%d) incomplete", u.GridX, u.GridY)
				}
			}
		})
	}
}

func TestA4AutoDetectUnitOrigins(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a4.png", 768, 720, green)
	units, err := LoadUnits(path, nil)
	if err != nil {
		t.Fatalf("LoadUnits: %v", err)
	}
	if len(units) != 48 {
		t.Fatalf("expected 48 units, got %d", len(units))
	}
	// Second unit row starts after one 3-tile wall-top row.
	if u := units[8]; u.GridX != 0 || u.GridY != 3 || u.GridHeight != 2 {
		t.Errorf("unit 8 = (%d,%d) %d×%d, want (0,3) 2×2", u.GridX, u.GridY, u.GridWidth, u.GridHeight)
	}
}

func TestUndersizedImageSkipsUnits(t *testing.T) {
	// Two tile rows only: no 2×3 unit fits.
	path := writePNG(t, t.TempDir(), "short.png", 768, 96, green)
	units, err := LoadUnits(path, tileset.MustLookup("A2"))
	if err != nil {
		t.Fatalf("LoadUnits: %v", err)
	}
	if len(units) != 0 {
		t.Errorf("expected no units, got %d", len(units))
	}

	path = writePNG(t, t.TempDir(), "narrow.png", 192, 576, green)
	units, err = LoadUnits(path, tileset.MustLookup("A2"))
	if err != nil {
		t.Fatalf("LoadUnits: %v", err)
	}
	if len(units) != 8 {
		t.Errorf("192×576 as A2 should give 2 units per row × 4 rows, got %d", len(units))
	}
}

func TestTilePixelsCopied(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 96, 48))
	red := color.NRGBA{R: 255, A: 255}
	for y := 0; y < 48; y++ {
		for x := 48; x < 96; x++ {
			img.SetNRGBA(x, y, red)
		}
	}
	units := Units(FromImage("mem.png", img), nil)
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if got := units[0].Tiles[0].Image.NRGBAAt(5, 5); got.A != 0 {
		t.Errorf("left tile should be transparent, got %v", got)
	}
	if got := units[1].Tiles[0].Image.NRGBAAt(5, 5); got != red {
		t.Errorf("right tile pixel = %v, want %v", got, red)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.png"), corrupt} {
		_, err := LoadUnits(path, nil)
		if !errors.Is(err, ErrImageLoad) {
			t.Errorf("LoadUnits(%s) error = %v, want ErrImageLoad", path, err)
		}
		var le *LoadError
		if !errors.As(err, &le) || le.Path != path {
			t.Errorf("expected LoadError carrying %s, got %v", path, err)
		}
	}
}

func TestLoadUnitsByNameUnknown(t *testing.T) {
	path := writePNG(t, t.TempDir(), "x.png", 48, 48, green)
	_, err := LoadUnitsByName(path, "Q")
	if !errors.Is(err, tileset.ErrUnknownType) {
		t.Errorf("error = %v, want ErrUnknownType", err)
	}
	units, err := LoadUnitsByName(path, "")
	if err != nil || len(units) != 1 {
		t.Errorf("auto-detect by empty name: %d units, %v", len(units), err)
	}
}

func TestFindImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "b.png", 48, 48, green)
	writePNG(t, dir, "a.PNG", 48, 48, green)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := FindImages(dir)
	if len(got) != 2 {
		t.Fatalf("FindImages = %v, want 2 files", got)
	}
	if filepath.Base(got[0]) != "a.PNG" || filepath.Base(got[1]) != "b.png" {
		t.Errorf("FindImages order = %v", got)
	}
	if FindImages(filepath.Join(dir, "nope")) != nil {
		t.Error("missing folder should yield no images")
	}
}

func TestLoadBatchSkipsFailures(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 96, 96, green)
	b := writePNG(t, dir, "b.png", 48, 48, green)
	missing := filepath.Join(dir, "missing.png")

	var calls []int
	res := LoadBatch(context.Background(), []string{a, missing, b}, nil, func(done, total int) {
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		calls = append(calls, done)
	})

	if len(res.Units) != 5 {
		t.Errorf("expected 5 units, got %d", len(res.Units))
	}
	if res.FailureCount() != 1 || res.Failed[0].Path != missing {
		t.Errorf("failures = %v", res.Failed)
	}
	if res.Cancelled {
		t.Error("batch should not be cancelled")
	}
	if len(calls) != 3 || calls[2] != 3 {
		t.Errorf("progress calls = %v", calls)
	}
	// Order of loading is preserved.
	if res.Units[0].SourcePath() != a || res.Units[4].SourcePath() != b {
		t.Error("units not in input order")
	}
}

func TestLoadBatchCancel(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writePNG(t, dir, "a.png", 48, 48, green),
		writePNG(t, dir, "b.png", 48, 48, green),
		writePNG(t, dir, "c.png", 48, 48, green),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	res := LoadBatch(ctx, paths, nil, func(done, total int) {
		if done == 1 {
			cancel()
		}
	})

	if !res.Cancelled {
		t.Error("expected Cancelled")
	}
	if len(res.Loaded) != 1 || len(res.Units) != 1 {
		t.Errorf("expected exactly the first image, got %v", res.Loaded)
	}
}

func TestLoadFolder(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 96, 96, green)
	writePNG(t, dir, "b.png", 96, 96, green)

	res := LoadFolder(context.Background(), dir, nil, nil)
	if len(res.Units) != 8 {
		t.Errorf("expected 8 units, got %d", len(res.Units))
	}
}

func TestExceedsRecommended(t *testing.T) {
	if ExceedsRecommended(MaxRecommendedFiles) {
		t.Error("the limit itself should not warn")
	}
	if !ExceedsRecommended(MaxRecommendedFiles + 1) {
		t.Error("one over the limit should warn")
	}
}
