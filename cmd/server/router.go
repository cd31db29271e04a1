package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"tally/internal/election/handler"
	jwttoken "tally/internal/jwt_token"
	"tally/internal/platform/config"
	"tally/internal/platform/metrics"
	"tally/pkg/platform/httputil"
	request "tally/pkg/platform/middleware/request"
	"tally/pkg/platform/middleware/requesttime"
)

const healthTimeout = 2 * time.Second

type routerDeps struct {
	Election handler.Service
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Health   healthChecker
	JWT      config.JWTConfig
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.TraceContext)
	r.Use(request.Recover(deps.Logger))
	r.Use(request.Logger(deps.Logger))
	r.Use(requesttime.Middleware)

	r.Get("/healthz", healthHandler(deps.Health))
	r.Handle("/metrics", metrics.Handler(deps.Registry))

	jwtService := jwttoken.NewJWTService(deps.JWT.SigningKey, deps.JWT.Issuer, deps.JWT.Audience)
	handler.New(deps.Election, deps.Logger, jwttoken.NewJWTServiceAdapter(jwtService)).Register(r)
	return r
}

func healthHandler(check healthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := check(ctx); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
