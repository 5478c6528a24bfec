package planner

import (
	"fmt"
	"sort"

	"github.com/ChipDepot/Bran/internal/types"
)

// ErrMissingDeviceUUID is returned when a non-coherent component lacks a
// device UUID — spec.md §9 open question 4 requires UUIDs on non-coherent
// components, and "production hardening should log-and-skip" (§7) rather
// than panic, so this is surfaced as an error instead of the anomaly
// spec.md says "panic is acceptable" for.
var ErrMissingDeviceUUID = fmt.Errorf("non-coherent component missing device_uuid")

// FindProblems walks the Location tree rooted at loc and classifies every
// non-coherent leaf data requirement into an Action, per spec.md §4.3:
//
//  1. Internal nodes recurse into every child.
//  2. Leaf nodes examine every non-coherent data requirement:
//     - under-provisioned (want > have): Addition(want-have), UUID-less.
//     - otherwise, each component is checked against RemediationMemory
//       and escalated: no entry -> Restart; Restart on file -> Reconfigure;
//       anything else on file -> Addition(1), UUID-less (fallback).
//  3. Mixed or empty nodes contribute nothing.
//
// cycle identifies the current reconciliation cycle, used only to keep
// RemediationMemory entries alive for GC purposes (internal/planner
// memory.go) — it does not affect classification content, so FindProblems
// remains pure with respect to (locationKey, loc, memory's *recorded
// actions*) as spec.md §8 property 4 requires.
//
// Child locations and data requirements are visited in sorted key order:
// Go map iteration order is unspecified, and a sorted walk is the
// reproducible analogue of spec.md's "map-iteration order" wording.
func FindProblems(locationKey string, loc types.Location, memory *RemediationMemory, cycle int) ([]Problem, error) {
	switch {
	case loc.IsInternal():
		return findProblemsInternal(loc, memory, cycle)
	case loc.IsLeaf():
		return findProblemsLeaf(locationKey, loc, memory, cycle)
	default:
		return nil, nil
	}
}

func findProblemsInternal(loc types.Location, memory *RemediationMemory, cycle int) ([]Problem, error) {
	keys := make([]string, 0, len(loc.Locations))
	for k := range loc.Locations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var report []Problem
	for _, key := range keys {
		child, err := FindProblems(key, loc.Locations[key], memory, cycle)
		if err != nil {
			return nil, err
		}
		report = append(report, child...)
	}
	return report, nil
}

func findProblemsLeaf(locationKey string, loc types.Location, memory *RemediationMemory, cycle int) ([]Problem, error) {
	dataKeys := make([]string, 0, len(loc.DataRequirements))
	for k := range loc.DataRequirements {
		dataKeys = append(dataKeys, k)
	}
	sort.Strings(dataKeys)

	var report []Problem
	for _, dataKey := range dataKeys {
		req := loc.DataRequirements[dataKey]
		if req.Status == types.StatusCoherent {
			continue
		}

		have := len(req.Components)
		want := req.Count

		if want > have {
			report = append(report, Problem{
				Action: Action{Kind: ActionAddition, Count: want - have},
				Info:   ProblemInfo{LocationKey: locationKey, DataRequirementKey: dataKey},
			})
			continue
		}

		for _, component := range req.Components {
			if component.DeviceUUID == "" {
				return nil, fmt.Errorf("%s/%s: %w", locationKey, dataKey, ErrMissingDeviceUUID)
			}
			p := ProblemInfo{LocationKey: locationKey, DataRequirementKey: dataKey, DeviceUUID: component.DeviceUUID}

			lastAction, found := memory.Observe(p, cycle)
			switch {
			case !found:
				report = append(report, Problem{Action: Action{Kind: ActionRestart}, Info: p})
			case lastAction == ActionRestart:
				report = append(report, Problem{Action: Action{Kind: ActionReconfigure}, Info: p})
			default:
				report = append(report, Problem{
					Action: Action{Kind: ActionAddition, Count: 1},
					Info:   ProblemInfo{LocationKey: locationKey, DataRequirementKey: dataKey},
				})
			}
		}
	}
	return report, nil
}
