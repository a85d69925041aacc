package tileset

// GroupBE is the front-end label for the interchangeable B, C, D and E types.
const GroupBE = "B-E"

// autoDetect maps image dimensions to the layout used when no type is given.
// 768×576 is ambiguous between A1 and A2 and resolves to A2.
var autoDetect = map[[2]int]string{
	{768, 576}: "A2",
	{768, 384}: "A3",
	{768, 720}: "A4",
}

// DetectForDimensions returns the autotile type for an image size, if any.
// Sizes outside the table fall back to a plain 1×1 grid at the caller.
func DetectForDimensions(width, height int) (string, bool) {
	name, ok := autoDetect[[2]int{width, height}]
	return name, ok
}

// MatchDimensions returns the first registered type whose full image size
// equals width×height. It is the fallback for opening finished tileset
// images whose size is not in the autotile table (A5, B-E).
func MatchDimensions(width, height int) (string, bool) {
	if name, ok := DetectForDimensions(width, height); ok {
		return name, true
	}
	for _, name := range order {
		t := registry[name]
		if t.PixelWidth == width && t.PixelHeight == height {
			return name, true
		}
	}
	return "", false
}

// DisplayName returns the label a front end shows for a type.
func DisplayName(name string) string {
	switch name {
	case "B", "C", "D", "E":
		return GroupBE
	}
	return name
}

// Choices returns the selectable entries for a type picker.
func Choices() []string {
	return []string{"A1", "A2", "A3", "A4", "A5", GroupBE}
}

// Canonical maps a picker entry back to a registered type name.
func Canonical(choice string) string {
	if choice == GroupBE {
		return "B"
	}
	return choice
}

// LookupChoice resolves either a type name or a picker entry.
func LookupChoice(choice string) (*Type, error) {
	return Lookup(Canonical(choice))
}
