package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.json")

	p := LoadFrom(path)
	if p.String(KeyLastType) != "" || p.Int(KeyPreviewScale, 2) != 2 {
		t.Fatal("missing file should give empty preferences")
	}

	p.SetString(KeyLastType, "A4")
	p.SetInt(KeyPreviewScale, 3)
	if err := p.Save(); err != nil {
		t.Fatal(err)
	}

	q := LoadFrom(path)
	if got := q.String(KeyLastType); got != "A4" {
		t.Errorf("last_type = %q", got)
	}
	if got := q.Int(KeyPreviewScale, 1); got != 3 {
		t.Errorf("preview_scale = %d", got)
	}
	if got := q.StringWithFallback("missing", "B"); got != "B" {
		t.Errorf("fallback = %q", got)
	}
}

func TestCorruptFileIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := LoadFrom(path)
	if p.String(KeyLastType) != "" {
		t.Error("corrupt file should yield empty preferences")
	}
	p.SetString(KeyLastType, "B")
	if err := p.Save(); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultPath(t *testing.T) {
	if got := filepath.Base(DefaultPath()); got != "preferences.json" {
		t.Errorf("DefaultPath() = %s", DefaultPath())
	}
	if got := filepath.Base(filepath.Dir(DefaultPath())); got != "tileset-composer" {
		t.Errorf("DefaultPath() dir = %s", got)
	}
}
