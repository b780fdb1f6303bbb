package api

import (
	"net/http"
	"vrp-client/internal/api/handlers"
	"vrp-client/internal/client"
	"vrp-client/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// newClient builds one routing client per request from the caller's token.
func NewRouter(newClient func(token string) *client.Client) http.Handler {
	metrics.RegisterDefault()
	mux := http.NewServeMux()

	scheduleHandler := &handlers.ScheduleHandler{NewClient: newClient}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/solve", scheduleHandler.Solve)
	mux.HandleFunc("/fix", scheduleHandler.Fix)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}
