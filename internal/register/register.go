// Package register implements the in-memory application register: the
// mapping from application name to objective+state, and the per-location
// corrective directives posted against each application. It is the single
// source of truth shared by the HTTP ingress handlers (internal/api) and
// the reconciliation planner (internal/planner).
//
// Grounded on original_source/bran/src/aggregator/application_register.rs
// (the `apps: HashMap<String, Application>` register guarded by a mutex)
// generalized to also hold the per-location directives map spec.md §3
// describes, and on keda's pattern of a coarse RWMutex guarding a small
// in-memory cache (pkg/scaling/scale_handler.go's scalerCachesLock).
package register

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ChipDepot/Bran/internal/types"
)

// UpsertResult distinguishes a fresh directive slot from an overwritten
// one, for logging purposes only (spec.md §4.1).
type UpsertResult int

const (
	Created UpsertResult = iota
	Updated
)

func (r UpsertResult) String() string {
	if r == Created {
		return "created"
	}
	return "updated"
}

// Register is the thread-safe objective+state+directives store.
type Register struct {
	mu         sync.RWMutex
	apps       map[string]types.Application
	directives map[string]map[string]types.Directives
}

// New returns an empty Register.
func New() *Register {
	return &Register{
		apps:       make(map[string]types.Application),
		directives: make(map[string]map[string]types.Directives),
	}
}

// RegisterObjective inserts a brand-new application. It fails with
// ErrAlreadyRegistered if name is already present.
func (r *Register) RegisterObjective(name string, app types.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.apps[name]; ok {
		return fmt.Errorf("%s: %w", name, ErrAlreadyRegistered)
	}
	r.apps[name] = app
	return nil
}

// UpdateObjective replaces the stored Application in full. It fails with
// ErrNotRegistered if name is absent.
func (r *Register) UpdateObjective(name string, app types.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.apps[name]; !ok {
		return fmt.Errorf("%s: %w", name, ErrNotRegistered)
	}
	r.apps[name] = app
	return nil
}

// GetApplication returns the stored Application. It fails with
// ErrNotFound if name is absent.
func (r *Register) GetApplication(name string) (types.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.apps[name]
	if !ok {
		return types.Application{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return app, nil
}

// UpsertDirective assigns the kind-specific slot of the per-(app,location)
// Directives record to order, overwriting any prior value in that slot.
// It fails with ErrAppNotFound if name is unknown, or ErrLocationNotFound
// if location is not a direct child key of the application's root
// locations map (the shallow check spec.md §4.1's open question adopts).
//
// order must be *types.AdditionOrder, *types.ReconfigureOrder, or
// *types.RestartOrder matching kind; passing a mismatched type is a
// programmer error and panics, the same way a caller deserializing the
// wrong JSON shape into the wrong Go type would already have failed
// earlier in the handler.
func (r *Register) UpsertDirective(appName, location string, kind types.DirectiveKind, order any) (UpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[appName]
	if !ok {
		return 0, fmt.Errorf("%s: %w", appName, ErrAppNotFound)
	}
	if _, ok := app.Locations.Locations[location]; !ok {
		return 0, fmt.Errorf("%s/%s: %w", appName, location, ErrLocationNotFound)
	}

	perApp, ok := r.directives[appName]
	if !ok {
		perApp = make(map[string]types.Directives)
		r.directives[appName] = perApp
	}

	directive := perApp[location]
	result := Created
	switch kind {
	case types.DirectiveAddition:
		if directive.Addition != nil {
			result = Updated
		}
		directive.Addition = order.(*types.AdditionOrder)
	case types.DirectiveReconfig:
		if directive.Reconfig != nil {
			result = Updated
		}
		directive.Reconfig = order.(*types.ReconfigureOrder)
	case types.DirectiveRestart:
		if directive.Restart != nil {
			result = Updated
		}
		directive.Restart = order.(*types.RestartOrder)
	default:
		panic(fmt.Sprintf("register: unknown directive kind %v", kind))
	}
	perApp[location] = directive

	return result, nil
}

// GetDirectives returns the per-location directives map for name. It
// fails with ErrNotFound if no directive has ever been posted for name.
func (r *Register) GetDirectives(name string) (map[string]types.Directives, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	perApp, ok := r.directives[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	out := make(map[string]types.Directives, len(perApp))
	for k, v := range perApp {
		out[k] = v
	}
	return out, nil
}

// SnapshotNonCoherentApps returns a copy of every Application whose status
// is neither Coherent nor Uninitialized, sorted by name for deterministic
// iteration downstream. Taken under a read lock and returned as values, so
// the planner can classify and dispatch without holding the Register's
// lock (spec.md §5: "dispatch must not be performed holding the lock").
func (r *Register) SnapshotNonCoherentApps() []types.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.apps))
	for name := range r.apps {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]types.Application, 0, len(names))
	for _, name := range names {
		app := r.apps[name]
		if app.Status == types.StatusCoherent || app.Status == types.StatusUninitialized {
			continue
		}
		out = append(out, app)
	}
	return out
}

// GetDirectivesFor returns the per-location directives map for name
// without erroring — used by the planner, which treats an absent entry as
// "no remediation available" and proceeds rather than failing the cycle.
func (r *Register) GetDirectivesFor(name string) (map[string]types.Directives, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	perApp, ok := r.directives[name]
	if !ok {
		return nil, false
	}
	out := make(map[string]types.Directives, len(perApp))
	for k, v := range perApp {
		out[k] = v
	}
	return out, true
}
