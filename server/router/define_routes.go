// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"fmt"
	"io/fs"
	"net/http"
	"net/http/pprof"
	"runtime/trace"
	"time"

	"codeberg.org/docs-ru/docs-ru/config"
	"codeberg.org/docs-ru/docs-ru/server/assets"
	"codeberg.org/docs-ru/docs-ru/server/middleware"
	"codeberg.org/docs-ru/docs-ru/server/routes"
)

// DefineRoutes registers every route on the router.
//
// Middleware is added separately by RegisterMiddleware.
func (router *Router) DefineRoutes() {
	fileServerHandler := fileServer()

	// Files at the root of the 'assets' subdirectory.
	router.Handle("GET /robots.txt", fileServerHandler)
	router.Handle("GET /favicon.svg", fileServerHandler)

	// Patterns ending in "/" are prefix matches.
	router.Handle("GET /css/", fileServerHandler)
	router.Handle("GET /js/", fileServerHandler)

	// Documentation routes
	// /{$} matches only the root path
	router.HandleFunc("GET /{$}", middleware.CatchError(routes.IndexPage))
	router.HandleFunc("GET /docs/{path...}", middleware.CatchError(routes.DocPage))

	// Addresses of the old site, which served pages without the /docs/ prefix.
	for _, section := range legacySections {
		router.HandleFunc("GET /"+section+"/", redirectLegacyPage)
	}

	// Settings routes
	router.HandleFunc("GET /settings", middleware.CatchError(routes.SettingsPage))
	router.HandleFunc("POST /settings/{action}", middleware.CatchError(routes.SettingsPOST))

	// JSON API routes
	router.HandleFunc("GET /api/toc", middleware.CatchError(routes.TOCAPI))
	router.HandleFunc("GET /api/preferences", middleware.CatchError(routes.PreferencesAPI))

	// Everything else gets the themed 404 page.
	router.HandleFunc("/", middleware.CatchError(func(w http.ResponseWriter, r *http.Request) error {
		http.NotFound(w, r)

		return nil
	}))

	if config.Global.Development.InDevelopment {
		registerDebugRoutes(router)
	}
}

// Serve static files from embedded assets.
func fileServer() http.HandlerFunc {
	staticContentFS, err := fs.Sub(assets.FS, "assets")
	if err != nil {
		panic(fmt.Errorf("failed to create sub-filesystem for embedded 'assets' directory: %w", err))
	}

	fileServer := http.FileServer(http.FS(staticContentFS))
	fileServerHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Using a strong ETag for static files embedded via go:embed
		// ref: https://www.rfc-editor.org/rfc/rfc9110#weak.and.strong.validators
		//
		// Since go:embed requires rebuilding when files change, we use a per-instance
		// cache ID to ensure browsers fetch fresh content after any deployment.
		w.Header().Set("ETag", config.Global.Instance.FileServerCacheID)
		fileServer.ServeHTTP(w, r)
	})

	return fileServerHandler
}

var flightRecorder = trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: time.Minute})

func registerDebugRoutes(router *Router) {
	err := flightRecorder.Start()
	if err != nil {
		panic(err)
	}

	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	router.HandleFunc("GET /debug/flight", func(w http.ResponseWriter, r *http.Request) {
		_, _ = flightRecorder.WriteTo(w)
	})
}
