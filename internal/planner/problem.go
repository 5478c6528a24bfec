// Package planner implements the control-theoretic heart of the service:
// classifying non-coherent topology leaves into corrective actions,
// escalating remediation across cycles via in-process memory, building
// dispatch-ready orders, and posting them to the executor.
//
// Grounded on original_source/bran/src/planner/planner.rs (find_problems,
// ProblemInfo, Action) and kedacore-keda's pkg/scaling/scale_handler.go
// (the polling loop that classifies a scalable object's state and
// dispatches to pkg/scaling/executor) for the overall cycle shape.
package planner

import "fmt"

// ProblemInfo identifies a single non-coherent data requirement (and,
// where relevant, a specific component within it). Two ProblemInfo values
// with equal fields are equal — used as a map key for RemediationMemory.
type ProblemInfo struct {
	LocationKey        string
	DataRequirementKey string
	DeviceUUID         string // empty when the problem does not target a specific device
}

func (p ProblemInfo) String() string {
	if p.DeviceUUID == "" {
		return fmt.Sprintf("%s/%s", p.LocationKey, p.DataRequirementKey)
	}
	return fmt.Sprintf("%s/%s@%s", p.LocationKey, p.DataRequirementKey, p.DeviceUUID)
}

// ActionKind tags the variant of an Action.
type ActionKind int

const (
	ActionAddition ActionKind = iota
	ActionRestart
	ActionReconfigure
)

func (k ActionKind) String() string {
	switch k {
	case ActionAddition:
		return "addition"
	case ActionRestart:
		return "restart"
	case ActionReconfigure:
		return "reconfigure"
	default:
		return "unknown"
	}
}

// Action is the planner's classification output for one ProblemInfo:
// Addition(n) with n>=1, Restart, or Reconfigure.
type Action struct {
	Kind  ActionKind
	Count int // only meaningful when Kind == ActionAddition; always >= 1
}

// Problem pairs a classified Action with the ProblemInfo it applies to.
type Problem struct {
	Action Action
	Info   ProblemInfo
}
