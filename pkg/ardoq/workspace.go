package ardoq

import (
	"fmt"
	"strings"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

// Workspace identifies a partition of the remote graph.
type Workspace int

// Workspaces known to the adapter.
const (
	VCSHosting Workspace = iota
	CodeRepository
	SoftwareFrameworks
)

// Default remote component type ids per workspace.
const (
	DefaultHostingComponentType    = "p1681283498700"
	DefaultRepositoryComponentType = "p1681283498700"
	DefaultFrameworkComponentType  = "p1659003743296"
)

var workspaceNames = map[Workspace]string{
	VCSHosting:         "vcs_hosting",
	CodeRepository:     "code_repository",
	SoftwareFrameworks: "software_frameworks",
}

// String returns the configuration name of the workspace.
func (w Workspace) String() string {
	if name, ok := workspaceNames[w]; ok {
		return name
	}
	return fmt.Sprintf("workspace(%d)", int(w))
}

// ParseWorkspace parses a workspace name such as "code_repository".
func ParseWorkspace(s string) (Workspace, error) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for w, name := range workspaceNames {
		if name == s {
			return w, nil
		}
	}
	return 0, errors.NewValidationError("workspace", s, "unknown workspace")
}

// AllWorkspaces returns every workspace in declaration order.
func AllWorkspaces() []Workspace {
	return []Workspace{VCSHosting, CodeRepository, SoftwareFrameworks}
}

// WorkspaceConfig is the remote identity of a workspace.
type WorkspaceConfig struct {
	// ID is the remote root workspace id.
	ID string `json:"id" yaml:"id"`

	// ComponentType is the type id given to components created in the workspace.
	ComponentType string `json:"componentType" yaml:"component_type"`
}

// Workspaces maps each workspace to its remote identity.
// It is built once and never modified.
type Workspaces struct {
	entries map[Workspace]WorkspaceConfig
}

// NewWorkspaces builds the table, filling in default component types.
// Every workspace must have an id.
func NewWorkspaces(entries map[Workspace]WorkspaceConfig) (Workspaces, error) {
	out := make(map[Workspace]WorkspaceConfig, len(entries))
	for _, w := range AllWorkspaces() {
		cfg, ok := entries[w]
		if !ok || cfg.ID == "" {
			return Workspaces{}, errors.NewConfigError("workspaces", fmt.Sprintf("missing id for workspace %s", w), nil)
		}
		if cfg.ComponentType == "" {
			cfg.ComponentType = DefaultComponentType(w)
		}
		out[w] = cfg
	}
	return Workspaces{entries: out}, nil
}

// DefaultComponentType returns the built-in component type id for w.
func DefaultComponentType(w Workspace) string {
	switch w {
	case VCSHosting:
		return DefaultHostingComponentType
	case CodeRepository:
		return DefaultRepositoryComponentType
	default:
		return DefaultFrameworkComponentType
	}
}

// Lookup returns the configuration of w.
func (ws Workspaces) Lookup(w Workspace) (WorkspaceConfig, bool) {
	cfg, ok := ws.entries[w]
	return cfg, ok
}
