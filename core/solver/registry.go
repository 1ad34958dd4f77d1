package solver

import "fmt"

// Factory builds a solver backend.
type Factory func() Solver

var backends = map[string]Factory{}

// Register adds a backend factory under the given name.
func Register(name string, f Factory) { backends[name] = f }

// New instantiates the backend registered under name.
func New(name string) (Solver, error) {
	f, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver backend %q", name)
	}
	return f(), nil
}

// Backends lists the registered backend names.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	return names
}
