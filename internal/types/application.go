// Package types defines the wire shapes shared between the ingress
// handlers, the register, and the planner: Application, Location,
// DataRequirement, Component, Directives, and the order payloads.
//
// These are treated as opaque carriers by the register and the classifier
// (see internal/register and internal/planner) — nothing in this package
// encodes planning logic.
package types

// Status is the coherence status of an Application or a DataRequirement.
// Only Uninitialized and Coherent are named; every other value is treated
// as "needs reconciliation" by the planner.
type Status string

const (
	StatusUninitialized Status = "Uninitialized"
	StatusCoherent      Status = "Coherent"
)

// Application is the declared objective plus the last reported state of
// one managed application's topology.
type Application struct {
	Name      string   `json:"name"`
	Status    Status   `json:"status"`
	Locations Location `json:"locations"`
}

// Location is a node in an application's topology tree. An internal node
// carries Locations (children) and no DataRequirements; a leaf carries
// DataRequirements and no Locations. A node with both or neither is
// "mixed"/empty and contributes no problems.
type Location struct {
	Locations        map[string]Location        `json:"locations,omitempty"`
	DataRequirements map[string]DataRequirement `json:"data_requirements,omitempty"`
}

// IsInternal reports whether loc has children and no data requirements.
func (loc Location) IsInternal() bool {
	return len(loc.Locations) > 0 && len(loc.DataRequirements) == 0
}

// IsLeaf reports whether loc has data requirements and no children.
func (loc Location) IsLeaf() bool {
	return len(loc.DataRequirements) > 0 && len(loc.Locations) == 0
}

// DataRequirement is a (count, components, status) triple at a leaf
// location: the desired instance count, the currently known components,
// and whether the requirement is currently coherent.
type DataRequirement struct {
	Count      int         `json:"count"`
	Components []Component `json:"components"`
	Status     Status      `json:"status"`
}

// Component is one running instance backing a DataRequirement. DeviceUUID
// is optional on a coherent component but required on a non-coherent one
// (see spec open question 4) — callers populating a non-coherent
// DataRequirement must set it.
type Component struct {
	DeviceUUID string `json:"device_uuid,omitempty"`
}
