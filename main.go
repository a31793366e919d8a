// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
docs-ru serves the Russian translation of the Vue.js documentation, with
code samples in the API style and component format each reader prefers.
*/
package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"codeberg.org/docs-ru/docs-ru/config"
	"codeberg.org/docs-ru/docs-ru/core/audit"
	"codeberg.org/docs-ru/docs-ru/core/heading"
	"codeberg.org/docs-ru/docs-ru/core/lrucache"
	"codeberg.org/docs-ru/docs-ru/core/page"
	"codeberg.org/docs-ru/docs-ru/i18n"
	"codeberg.org/docs-ru/docs-ru/server/assets"
	"codeberg.org/docs-ru/docs-ru/server/middleware/limiter"
	"codeberg.org/docs-ru/docs-ru/server/router"
	"codeberg.org/docs-ru/docs-ru/server/routes"
)

const (
	// Values for http.Server timeouts.
	// ref: gosec: G112
	readHeaderTimeout time.Duration = 15 * time.Second
	readTimeout       time.Duration = 15 * time.Second
	writeTimeout      time.Duration = 10 * time.Second
	idleTimeout       time.Duration = 30 * time.Second

	serverShutdownDeadline time.Duration = 5 * time.Second
)

var errChmodSocket = errors.New("failed to change unix socket permissions")

// embeddedContent holds our static web server content.
//
//go:embed assets/css assets/js assets/favicon.svg assets/robots.txt
//go:embed all:po
var embeddedContent embed.FS

// init assigns the embedded filesystem to the exported assets.FS variable.
//
//nolint:gochecknoinits // this is a good use of init()
func init() {
	assets.FS = embeddedContent
}

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run orchestrates the application startup and graceful shutdown.
//
//nolint:funlen
func run() error {
	audit.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := i18n.Setup(assets.FS, config.Global.Internationalization.DefaultLocale); err != nil {
		return fmt.Errorf("failed to initialize i18n engine: %w", err)
	}

	log.Info().Interface("languages", i18n.Languages()).Msg("Initialized i18n engine")

	// Background work stops when the server shuts down.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lib, err := loadLibrary(ctx)
	if err != nil {
		return err
	}

	routes.Pages = lib

	var lim *limiter.Limiter

	if cfg := config.Global.Limiter; cfg.Enabled {
		lim = limiter.New(limiter.Options{
			Rate:       cfg.Rate,
			Burst:      cfg.Burst,
			Prefixes:   cfg.Prefixes,
			PassIPs:    cfg.PassIPs,
			IPv4Prefix: cfg.IPv4Prefix,
			IPv6Prefix: cfg.IPv6Prefix,
		})

		go lim.Run(ctx)
	}

	router := router.NewRouter()
	router.DefineRoutes()
	router.RegisterMiddleware(lim)

	// Create http.Server instance
	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	// Channel to listen for server errors
	serverErrors := make(chan error, 1)

	// Start main server in a goroutine
	go func() {
		listener, err := chooseListener()
		if err != nil {
			serverErrors <- fmt.Errorf("failed to create listener: %w", err)

			return
		}

		serverErrors <- server.Serve(listener)
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until a shutdown signal or a server error is received
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case s := <-quit:
		log.Info().Str("signal", s.String()).Msg("Shutdown signal received")
		log.Info().Msg("Shutting down server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverShutdownDeadline)

		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
	}

	log.Info().Msg("Server exited gracefully")

	return nil
}

// loadLibrary reads the content directory and, in development, keeps it in
// sync with the files until ctx is done.
func loadLibrary(ctx context.Context) (*page.Library, error) {
	cfg := config.Global

	slugger, err := heading.NewSlugger(cfg.Content.SlugMode)
	if err != nil {
		return nil, err
	}

	var cache *lrucache.Cache

	if cfg.Cache.Enabled {
		cache, err = lrucache.New(cfg.Cache.Size, cfg.Cache.Compress)
		if err != nil {
			return nil, fmt.Errorf("failed to create render cache: %w", err)
		}

		context.AfterFunc(ctx, cache.Close)
	}

	lib, err := page.NewLibrary(page.Options{
		Dir:      cfg.Content.Dir,
		Renderer: page.NewRenderer(slugger, cfg.Content.TOCMinLevel, cfg.Content.TOCMaxLevel),
		Cache:    cache,
	})
	if err != nil {
		return nil, err
	}

	if err := lib.Load(ctx); err != nil {
		// Broken pages are left out; the rest of the site is still served.
		log.Warn().Err(err).Msg("Some pages failed to load")
	}

	if len(lib.Paths()) == 0 {
		return nil, fmt.Errorf("%w: no pages in %s", page.ErrPageNotFound, cfg.Content.Dir)
	}

	log.Info().Int("pages", len(lib.Paths())).Str("dir", cfg.Content.Dir).Msg("Loaded content")

	if cfg.Development.InDevelopment || cfg.Development.WatchContent {
		go func() {
			if err := lib.Watch(ctx); err != nil {
				log.Err(err).Msg("Content watcher stopped")
			}
		}()
	}

	return lib, nil
}

func chooseListener() (net.Listener, error) {
	// Check if we should use a Unix domain socket
	if config.Global.Basic.UnixSocket != "" {
		unixAddr := config.Global.Basic.UnixSocket

		unixListener, err := (&net.ListenConfig{}).Listen(context.Background(), "unix", unixAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to start Unix socket listener on %v: %w", unixAddr, err)
		}

		if err = setupSocket(); err != nil {
			_ = unixListener.Close()

			return nil, err
		}

		// Assign the listener and log where we are listening
		log.Info().
			Str("address", unixAddr).
			Msg("Listening on Unix domain socket")

		return unixListener, nil
	}

	// Otherwise, fall back to TCP listener
	addr := net.JoinHostPort(config.Global.Basic.Host, config.Global.Basic.Port)

	tcpListener, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start TCP listener on %v: %w", addr, err)
	}

	addr = tcpListener.Addr().String()

	// Extract the port for logging
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		_ = tcpListener.Close()

		return nil, fmt.Errorf("failed to parse listener address %q: %w", addr, err)
	}

	// Log the address and convenient URL for local development
	log.Info().
		Str("address", addr).
		Str("port", port).
		Str("url", fmt.Sprintf("http://localhost:%v/", port)).
		Msg("Listening on address")

	return tcpListener, nil
}

func setupSocket() error {
	cfg := config.Global.Basic

	if cfg.UnixSocket == "" {
		return nil
	}

	if err := os.Chmod(cfg.UnixSocket, cfg.UnixSocketPermissions); err != nil {
		return fmt.Errorf("%w: %w", errChmodSocket, err)
	}

	return nil
}
