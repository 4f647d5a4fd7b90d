package transform

import (
	"fmt"

	"github.com/minepkg/mcjar/internals/merrors"
	"github.com/stoewer/go-strcase"
)

// RegistryBuilder collects steps. Use Build to get a Registry
type RegistryBuilder struct {
	steps []Step
}

// NewRegistryBuilder returns an empty builder
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{}
}

// Add adds a step. Steps run in the order they were added
func (b *RegistryBuilder) Add(step Step) *RegistryBuilder {
	b.steps = append(b.steps, step)
	return b
}

// Build validates the steps and returns an immutable Registry.
// Step names are kebab-cased and have to be unique
func (b *RegistryBuilder) Build() (*Registry, error) {
	seen := map[string]bool{}
	steps := make([]Step, len(b.steps))
	for i, step := range b.steps {
		name := strcase.KebabCase(step.Name)
		if name == "" {
			return nil, &merrors.ConfigurationError{
				Err:      fmt.Sprintf("transform step #%d has no name", i+1),
				HelpText: "Every [[transform]] needs a name",
			}
		}
		if seen[name] {
			return nil, &merrors.ConfigurationError{
				Err:      fmt.Sprintf("transform step %s is defined twice", name),
				HelpText: "Transform names have to be unique",
			}
		}
		seen[name] = true
		step.Name = name
		steps[i] = step
	}
	return &Registry{steps: steps}, nil
}

// Registry is the ordered list of transform steps
type Registry struct {
	steps []Step
}

// Steps returns a copy of all steps in order
func (r *Registry) Steps() []Step {
	steps := make([]Step, len(r.steps))
	copy(steps, r.steps)
	return steps
}

// Len returns the number of steps
func (r *Registry) Len() int {
	return len(r.steps)
}
