// Package api implements the HTTP ingress surface: thin adapters that
// parse a path parameter and body, invoke one Register operation, and
// translate the outcome to an HTTP response, per spec.md §4.2.
//
// Grounded on original_source/bran/src/endpoints/{receptor,contexter}.rs
// for the per-route log lines and response shapes, and on keda's
// cmd/adapter/main.go for using stdlib http.ServeMux (the pack carries no
// third-party HTTP router — see DESIGN.md).
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-logr/logr"

	"github.com/ChipDepot/Bran/internal/register"
	"github.com/ChipDepot/Bran/internal/types"
)

// API bundles the dependencies every ingress handler needs.
type API struct {
	Register *register.Register
	Logger   logr.Logger
}

// New returns an API ready to build a router from.
func New(reg *register.Register, logger logr.Logger) *API {
	return &API{Register: reg, Logger: logger}
}

func (a *API) registerObjective(w http.ResponseWriter, r *http.Request) {
	appName := r.PathValue("app")
	logger := a.Logger.WithValues("handler", "registerObjective", "application", appName, "remote_addr", r.RemoteAddr)

	var app types.Application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		logger.Error(err, "invalid request body")
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	logger.Info("POST objective request")
	if err := a.Register.RegisterObjective(appName, app); err != nil {
		if errors.Is(err, register.ErrAlreadyRegistered) {
			logger.Info("application already registered")
			writeMsg(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error(err, "failed to register objective")
		writeMsg(w, http.StatusInternalServerError, "internal error")
		return
	}

	logger.Info("application registered")
	writeJSON(w, http.StatusOK, nil)
}

func (a *API) updateObjective(w http.ResponseWriter, r *http.Request) {
	appName := r.PathValue("app")
	logger := a.Logger.WithValues("handler", "updateObjective", "application", appName, "remote_addr", r.RemoteAddr)

	var app types.Application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		logger.Error(err, "invalid request body")
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	logger.Info("PUT objective request")
	if err := a.Register.UpdateObjective(appName, app); err != nil {
		if errors.Is(err, register.ErrNotRegistered) {
			logger.Info("application not registered")
			writeMsg(w, http.StatusNotFound, err.Error())
			return
		}
		logger.Error(err, "failed to update objective")
		writeMsg(w, http.StatusInternalServerError, "internal error")
		return
	}

	logger.Info("application's state was updated")
	writeJSON(w, http.StatusOK, nil)
}

func (a *API) getApplication(w http.ResponseWriter, r *http.Request) {
	appName := r.PathValue("app")
	logger := a.Logger.WithValues("handler", "getApplication", "application", appName, "remote_addr", r.RemoteAddr)

	logger.Info("GET application request")
	app, err := a.Register.GetApplication(appName)
	if err != nil {
		logger.Info("application not found")
		writeMsg(w, http.StatusNotFound, err.Error())
		return
	}

	logger.Info("application info sent")
	writeJSON(w, http.StatusOK, app)
}

// upsertDirective returns a handler for one of the three directive kinds,
// decoding the right concrete order type before delegating to the
// Register.
func (a *API) upsertDirective(kind types.DirectiveKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appName := r.PathValue("app")
		location := r.PathValue("loc")
		logger := a.Logger.WithValues("handler", "upsertDirective", "kind", kind.String(),
			"application", appName, "location", location, "remote_addr", r.RemoteAddr)

		var order any
		switch kind {
		case types.DirectiveAddition:
			var o types.AdditionOrder
			if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
				logger.Error(err, "invalid request body")
				writeMsg(w, http.StatusBadRequest, "invalid request body")
				return
			}
			order = &o
		case types.DirectiveReconfig:
			var o types.ReconfigureOrder
			if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
				logger.Error(err, "invalid request body")
				writeMsg(w, http.StatusBadRequest, "invalid request body")
				return
			}
			order = &o
		case types.DirectiveRestart:
			var o types.RestartOrder
			if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
				logger.Error(err, "invalid request body")
				writeMsg(w, http.StatusBadRequest, "invalid request body")
				return
			}
			order = &o
		}

		logger.Info("POST directive request")
		result, err := a.Register.UpsertDirective(appName, location, kind, order)
		if err != nil {
			logger.Info("directive upsert failed", "error", err.Error())
			writeMsg(w, http.StatusNotFound, err.Error())
			return
		}

		logger.Info("directive upserted", "result", result.String())
		writeJSON(w, http.StatusOK, map[string]string{"msg": result.String()})
	}
}

func (a *API) getDirectives(w http.ResponseWriter, r *http.Request) {
	appName := r.PathValue("app")
	logger := a.Logger.WithValues("handler", "getDirectives", "application", appName, "remote_addr", r.RemoteAddr)

	logger.Info("GET directives request")
	directives, err := a.Register.GetDirectives(appName)
	if err != nil {
		logger.Info("directives not found")
		writeMsg(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, directives)
}
