// Package logging wires up the process-wide structured logger: a
// logr.Logger backed by zap, the same construction keda's
// cmd/operator/main.go uses (ctrl.SetLogger(zap.New(...))), minus the
// controller-runtime dependency this service has no other use for — just
// zap.NewProduction()/NewDevelopment() wrapped with zapr.NewLogger.
package logging

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

// New builds the root logr.Logger. development=true selects a
// human-readable console encoder (matching zap's own dev/prod split);
// false selects the JSON production encoder.
func New(development bool) (logr.Logger, func() error, error) {
	var zapLog *zap.Logger
	var err error
	if development {
		zapLog, err = zap.NewDevelopment()
	} else {
		zapLog, err = zap.NewProduction()
	}
	if err != nil {
		return logr.Logger{}, nil, fmt.Errorf("build zap logger: %w", err)
	}

	return zapr.NewLogger(zapLog), zapLog.Sync, nil
}
