package conv

import (
	"fmt"
	"slices"
	"strings"
)

// Engine names accepted by [FactoryByName].
const (
	EngineDirect     = "direct"
	EngineOverlapAdd = "overlap-add"
	EngineFourier    = "fourier"

	// DefaultEngine is used when no backend is configured.
	DefaultEngine = EngineOverlapAdd
)

var factories = map[string]Factory{
	EngineDirect:     NewDirect,
	EngineOverlapAdd: OverlapAddFactory(0),
	EngineFourier:    NewFourier,
}

// FactoryByName returns the factory registered under name. The empty name
// selects [DefaultEngine].
func FactoryByName(name string) (Factory, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultEngine
	}

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownEngine, name, strings.Join(Names(), ", "))
	}

	return f, nil
}

// Names returns the registered engine names in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
