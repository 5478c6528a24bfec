package planner

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/ChipDepot/Bran/internal/register"
	"github.com/ChipDepot/Bran/internal/types"
)

// rootLocationKey is the location_key FindProblems is seeded with for an
// application's root Location, per spec.md §4.6 step 3.
const rootLocationKey = "root"

// Loop runs the Waiting -> Scanning -> Dispatching -> Waiting state
// machine of spec.md §4.6, grounded directly on keda's
// pkg/scaling/scale_handler.go startScaleLoop: a time.Timer reset to the
// next interval, with a select over the timer and ctx.Done() so a
// graceful shutdown interrupts the sleep without waiting out a whole
// cycle.
type Loop struct {
	Register   *register.Register
	Dispatcher *Dispatcher
	Memory     *RemediationMemory
	Logger     logr.Logger

	// InitialDelay is watcher_delay: the grace period before the first
	// Scanning phase. Defaults to 0.
	InitialDelay time.Duration
	// Interval is watcher_interval: the period between cycles. Defaults
	// to 120s if zero.
	Interval time.Duration

	cycle int
}

// Run blocks, executing reconciliation cycles until ctx is canceled.
func (l *Loop) Run(ctx context.Context) {
	interval := l.Interval
	if interval <= 0 {
		interval = 120 * time.Second
	}
	if l.Memory == nil {
		l.Memory = NewRemediationMemory()
	}

	timer := time.NewTimer(l.InitialDelay)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
		case <-ctx.Done():
			return
		}

		l.RunOnce(ctx)

		timer.Reset(interval)
	}
}

// RunOnce executes exactly one Scanning+Dispatching pass: snapshot,
// classify, build, dispatch, record, and finally purge stale memory
// entries. Concurrent cycles never overlap (Run is single-goroutine), so
// RunOnce always completes before the next one begins, per spec.md §4.6.
// Exported so tests can drive individual cycles deterministically instead
// of waiting on Run's timer.
func (l *Loop) RunOnce(ctx context.Context) {
	l.cycle++
	apps := l.Register.SnapshotNonCoherentApps()

	for _, app := range apps {
		l.reconcileApp(ctx, app)
	}

	l.Memory.Purge(l.cycle)
}

func (l *Loop) reconcileApp(ctx context.Context, app types.Application) {
	logger := l.Logger.WithValues("application", app.Name)

	directives, ok := l.Register.GetDirectivesFor(app.Name)
	if !ok {
		logger.Info("no directives on file, skipping reconciliation")
		return
	}

	problems, err := FindProblems(rootLocationKey, app.Locations, l.Memory, l.cycle)
	if err != nil {
		logger.Error(err, "classification failed, skipping application")
		return
	}

	for _, problem := range problems {
		l.handleProblem(ctx, logger, directives, problem)
	}
}

func (l *Loop) handleProblem(ctx context.Context, logger logr.Logger, directives map[string]types.Directives, problem Problem) {
	directive := directives[problem.Info.LocationKey]

	switch problem.Action.Kind {
	case ActionAddition:
		l.dispatchAddition(ctx, logger, directive, problem)
	case ActionReconfigure:
		l.Memory.Record(problem.Info, ActionReconfigure, l.cycle)
		l.dispatchReconfigure(ctx, logger, directive, problem)
	case ActionRestart:
		l.Memory.Record(problem.Info, ActionRestart, l.cycle)
		l.dispatchRestart(ctx, logger, directive, problem)
	}
}

func (l *Loop) dispatchAddition(ctx context.Context, logger logr.Logger, directive types.Directives, problem Problem) {
	if directive.Addition == nil {
		logger.Info("no addition directive on file, skipping problem", "problem", problem.Info.String())
		return
	}

	for i := 0; i < problem.Action.Count; i++ {
		order := directive.Addition.Clone()
		if err := BuildAdditionOrder(order, problem.Info); err != nil {
			logger.Error(err, "failed to build addition order, skipping problem", "problem", problem.Info.String())
			return
		}
		if err := l.Dispatcher.Dispatch(ctx, OrderAddition, order); err != nil {
			logger.Error(err, "failed to dispatch addition order", "problem", problem.Info.String())
		}
	}
}

func (l *Loop) dispatchReconfigure(ctx context.Context, logger logr.Logger, directive types.Directives, problem Problem) {
	if directive.Reconfig == nil {
		logger.Info("no reconfig directive on file, skipping problem", "problem", problem.Info.String())
		return
	}

	order := directive.Reconfig.Clone()
	order.UUID = problem.Info.DeviceUUID
	if err := l.Dispatcher.Dispatch(ctx, OrderReconfigure, order); err != nil {
		logger.Error(err, "failed to dispatch reconfigure order", "problem", problem.Info.String())
	}
}

func (l *Loop) dispatchRestart(ctx context.Context, logger logr.Logger, directive types.Directives, problem Problem) {
	if directive.Restart == nil {
		logger.Info("no restart directive on file, skipping problem", "problem", problem.Info.String())
		return
	}

	order := directive.Restart.Clone()
	order.UUID = problem.Info.DeviceUUID
	if err := l.Dispatcher.Dispatch(ctx, OrderRestart, order); err != nil {
		logger.Error(err, "failed to dispatch restart order", "problem", problem.Info.String())
	}
}
