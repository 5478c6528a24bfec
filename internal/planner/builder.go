package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ChipDepot/Bran/internal/types"
)

// datakeyMarker is the templated placeholder rewritten by BuildAdditionOrder.
const datakeyMarker = "key="

// ErrAmbiguousDatakey is returned when an AdditionOrder template's args
// contain two or more "key=" entries — BuildAdditionOrder cannot tell
// which one to rewrite with the problem's data requirement key.
var ErrAmbiguousDatakey = errors.New("ambiguous datakey: more than one key= arg")

// BuildAdditionOrder mutates order (always a fresh clone of a template,
// never the stored directive) into a dispatch-ready shape for problem p,
// per spec.md §4.4:
//
//  1. Injects env_vars["device_uuid"] = a freshly generated v4 UUID.
//  2. Rewrites the single "key=..." arg, if present, to
//     "<data_requirement_key>=<suffix>"; fails with ErrAmbiguousDatakey if
//     more than one "key=" arg is present; does nothing if none are.
//  3. Appends "location=<location_key>" and "topic=<data_requirement_key>".
//
// Grounded directly on original_source/bran/src/planner/build_order.rs.
func BuildAdditionOrder(order *types.AdditionOrder, p ProblemInfo) error {
	if order.EnvVars == nil {
		order.EnvVars = make(map[string]string)
	}
	order.EnvVars["device_uuid"] = uuid.New().String()

	rewritten, err := processDatakey(order, p.DataRequirementKey)
	if err != nil {
		return err
	}
	if rewritten != "" {
		order.Args = append(order.Args, rewritten)
	}

	order.Args = append(order.Args, fmt.Sprintf("location=%s", p.LocationKey))
	order.Args = append(order.Args, fmt.Sprintf("topic=%s", p.DataRequirementKey))

	return nil
}

// processDatakey removes the single "key=..." arg (if exactly one exists)
// and returns its replacement "<reqKey>=<suffix>"; returns "" with no
// error if none exist; fails with ErrAmbiguousDatakey if more than one
// exists.
func processDatakey(order *types.AdditionOrder, reqKey string) (string, error) {
	matchIndex := -1
	matchCount := 0
	for i, arg := range order.Args {
		if strings.Contains(arg, datakeyMarker) {
			matchCount++
			matchIndex = i
		}
	}

	switch matchCount {
	case 0:
		return "", nil
	case 1:
		matched := order.Args[matchIndex]
		order.Args = append(order.Args[:matchIndex], order.Args[matchIndex+1:]...)
		return strings.ReplaceAll(matched, datakeyMarker, reqKey+"="), nil
	default:
		return "", ErrAmbiguousDatakey
	}
}
