package tileset

import (
	"fmt"
)

// Registry of known tileset types, in registration order.
var (
	registry = make(map[string]*Type)
	order    []string
)

// Register validates a type, precomputes its unit positions and adds it
// to the registry.
func Register(t *Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, dup := registry[t.Name]; dup {
		return fmt.Errorf("tileset type %s already registered", t.Name)
	}
	t.positions = computePositions(t)
	registry[t.Name] = t
	order = append(order, t.Name)
	return nil
}

// Lookup returns a tileset type by name.
func Lookup(name string) (*Type, error) {
	if t, ok := registry[name]; ok {
		return t, nil
	}
	return nil, &UnknownTypeError{Name: name}
}

// MustLookup is like Lookup but panics on unknown names. Intended for
// built-in names known at compile time.
func MustLookup(name string) *Type {
	t, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return t
}

// List returns all registered type names in registration order.
func List() []string {
	names := make([]string, len(order))
	copy(names, order)
	return names
}

func init() {
	for _, t := range builtinTypes() {
		if err := Register(t); err != nil {
			panic(err)
		}
	}
}
