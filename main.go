// Package main provides the tileset-composer command line tool.
package main

import (
	"log"

	"github.com/alecthomas/kong"

	"tileset-composer/internal/prefs"
	"tileset-composer/internal/version"
)

const appTitle = "tileset-composer"

const description = `Composes RPG Maker MZ tilesets (A1-A5, B-E) from source images.`

// Globals is bound into every command's Run method.
type Globals struct {
	Prefs *prefs.Prefs
}

var cli struct {
	Version kong.VersionFlag `help:"Print version and exit."`

	Types     TypesCmd     `cmd:"" help:"List tileset types."`
	Positions PositionsCmd `cmd:"" help:"Print the unit rectangles of a tileset type."`
	Inspect   InspectCmd   `cmd:"" help:"Show how an image is cut into units."`
	Compose   ComposeCmd   `cmd:"" help:"Build a tileset from a YAML recipe."`
	Reexport  ReexportCmd  `cmd:"" help:"Open a finished tileset and export it again."`
	Preview   PreviewCmd   `cmd:"" help:"Write a scaled preview of an image with unit outlines."`
	Blank     BlankCmd     `cmd:"" help:"Write an empty transparent tileset."`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	ctx := kong.Parse(
		&cli,
		kong.Name(appTitle),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := ctx.Run(&Globals{Prefs: prefs.Load()})
	ctx.FatalIfErrorf(err)
}
