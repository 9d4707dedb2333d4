// Package api exposes one loaded save image for inspection over HTTP:
// decoded tables, region summaries, scan overlays and player totals.
// Every route reads the same immutable image, so the server is a thin
// instrumented veneer over the analysis packages.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router assembles the chi router for the given server. Split from
// StartServer so tests can drive the routes without binding a socket.
func Router(server *Server, metrics *Metrics) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if server.config.APIKey != "" {
			r.Use(apiKeyMiddleware(server.config.APIKey))
		}

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Get("/tables", metrics.InstrumentHandler("GET", "/api/v1/tables", server.handleTables))
		r.Get("/tables/{name}", metrics.InstrumentHandler("GET", "/api/v1/tables/{name}", server.handleTable))
		r.Get("/regions", metrics.InstrumentHandler("GET", "/api/v1/regions", server.handleRegions))
		r.Get("/scan", metrics.InstrumentHandler("GET", "/api/v1/scan", server.handleScan))
		r.Get("/totals", metrics.InstrumentHandler("GET", "/api/v1/totals", server.handleTotals))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(analysis Analysis, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(analysis, config, metrics)
	router := Router(server, metrics)

	addr := fmt.Sprintf(":%d", config.Port)
	fmt.Printf("Starting sramdig inspection server on %s (session %s)\n", addr, server.session)
	fmt.Printf("Metrics available at: http://localhost:%d/metrics\n", config.Port)
	log.Fatal(http.ListenAndServe(addr, router))

	return nil
}
