package main

import (
	"context"
	"log"
	"net/http"
	"time"
	"vrp-client/internal/api"
	"vrp-client/internal/app"
	"vrp-client/internal/config"
)

// main is the gateway composition root.
// It wires the routing transport and schedule cache behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	deps, err := app.Wire(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Close()

	if cfg.Token == "" {
		log.Println("VRP_API_TOKEN not set; callers must send an Authorization header")
	}

	router := api.NewRouter(deps.NewClient)

	// Write timeout leaves room for slow solves on the routing service.
	log.Printf("Server listening addr=:%s base_url=%s cache=%s", cfg.Port, cfg.BaseURL, cfg.Cache)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Timeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
