package controllers

import (
	"context"
	"net/http"

	"github.com/chickorder/web/api/responses"
	"github.com/chickorder/web/pkg/config"
	"github.com/chickorder/web/pkg/errors"
	"github.com/chickorder/web/pkg/logger"
	"go.uber.org/multierr"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ChickOrder-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks every dependency and reports all failures at once.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ChickOrder-Env", cfg.App.Env)

		var combined error
		failing := map[string]string{}
		for name, dep := range deps {
			if err := dep.Ping(r.Context()); err != nil {
				combined = multierr.Append(combined, err)
				failing[name] = err.Error()
			}
		}
		if combined != nil {
			err := errors.Wrap(errors.CodeNetwork, combined, "dependencies unavailable").
				WithDetails(failing)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
