package tileset

// Built-in RPG Maker MZ layouts.
//
// A1 and A2 share dimensions (768×576). Images of that size are detected
// as A2; A1's animated 6×3 blocks are only used when chosen explicitly.

var (
	unit1x1 = UnitShape{Width: 1, Height: 1}
	unit2x2 = UnitShape{Width: 2, Height: 2}
	unit2x3 = UnitShape{Width: 2, Height: 3}
	unit6x3 = UnitShape{Width: 6, Height: 3}
)

func builtinTypes() []*Type {
	a1Row := []UnitShape{unit6x3, unit2x3, unit6x3, unit2x3}
	types := []*Type{
		// Water and animated autotiles: animated block + waterfall pairs.
		{Name: "A1", PixelWidth: 768, PixelHeight: 576, EvenRowLayout: a1Row, OddRowLayout: a1Row, UnitRows: 4},
		// Ground autotiles.
		uniform("A2", 768, 576, unit2x3, 4),
		// Building roofs and walls.
		uniform("A3", 768, 384, unit2x2, 4),
		// Wall tops (2×3) alternate with wall faces (2×2).
		{Name: "A4", PixelWidth: 768, PixelHeight: 720,
			EvenRowLayout: []UnitShape{unit2x3}, OddRowLayout: []UnitShape{unit2x2}, UnitRows: 6},
		uniform("A5", 384, 768, unit1x1, 16),
	}
	for _, name := range []string{"B", "C", "D", "E"} {
		types = append(types, uniform(name, 768, 768, unit1x1, 16))
	}
	return types
}

func uniform(name string, width, height int, shape UnitShape, rows int) *Type {
	return &Type{
		Name:          name,
		PixelWidth:    width,
		PixelHeight:   height,
		EvenRowLayout: []UnitShape{shape},
		OddRowLayout:  []UnitShape{shape},
		UnitRows:      rows,
	}
}
