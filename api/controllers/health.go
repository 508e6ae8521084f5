package controllers

import (
	"net/http"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/api/responses"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/config"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/logger"
	pkgredis "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/redis"
)

const envHeader = "X-QLBH-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["database"] = "down"
				healthy = false
			} else {
				checks["database"] = "up"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = "down"
				healthy = false
			} else {
				checks["redis"] = "up"
			}
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
