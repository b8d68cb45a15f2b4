package controllers

import (
	"net/http"

	"github.com/angelmondragon/crmgraphql-backend/api/responses"
	"github.com/angelmondragon/crmgraphql-backend/pkg/config"
	"github.com/angelmondragon/crmgraphql-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/crmgraphql-backend/pkg/errors"
	"github.com/angelmondragon/crmgraphql-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CRM-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CRM-Env", cfg.App.Env)
		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
