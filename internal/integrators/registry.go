package integrators

import (
	"fmt"

	"github.com/san-kum/genlab/internal/dynamo"
)

// Names lists the selectable schemes.
var Names = []string{"euler", "rk4"}

// ByName returns a fresh integrator.
func ByName(name string) (dynamo.Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	}
	return nil, fmt.Errorf("unknown integrator: %s", name)
}
