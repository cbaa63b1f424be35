package ardoq

import (
	"fmt"
	"strings"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

// dependencySeparator splits a dependency string into name and version.
const dependencySeparator = " -> "

// Dependency is a named artifact at a version.
type Dependency struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// Equal reports whether both name and version match.
func (d Dependency) Equal(other Dependency) bool {
	return d.Name == other.Name && d.Version == other.Version
}

// FullName returns "<name> <version>".
func (d Dependency) FullName() string {
	return d.Name + " " + d.Version
}

// String implements fmt.Stringer.
func (d Dependency) String() string {
	return d.Name + dependencySeparator + d.Version
}

// ResolvedDependency is a dependency paired with its remote component id.
type ResolvedDependency struct {
	Dependency
	ComponentID string `json:"componentId,omitempty" yaml:"component_id,omitempty"`
}

// MalformedDependencyError is returned when a dependency string does not
// have the "<name> -> <version>" shape.
type MalformedDependencyError struct {
	Input string
}

// Error implements the error interface.
func (e *MalformedDependencyError) Error() string {
	return fmt.Sprintf("Dependency string '%s' is malformed. Should match <name> -> <version>", e.Input)
}

// Is implements errors.Is support.
func (e *MalformedDependencyError) Is(target error) bool {
	return target == errors.ErrInvalidInput
}

// ParseDependency parses "<name> -> <version>".
func ParseDependency(s string) (Dependency, error) {
	name, version, ok := strings.Cut(s, dependencySeparator)
	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)
	if !ok || name == "" || version == "" || strings.Contains(version, dependencySeparator) {
		return Dependency{}, &MalformedDependencyError{Input: s}
	}
	return Dependency{Name: name, Version: version}, nil
}
