// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"codeberg.org/docs-ru/docs-ru/server/middleware"
	"codeberg.org/docs-ru/docs-ru/server/middleware/limiter"
	"codeberg.org/docs-ru/docs-ru/server/middleware/set_request_context"
)

// RegisterMiddleware installs the middleware chain. lim may be nil when rate
// limiting is disabled.
func (router *Router) RegisterMiddleware(lim *limiter.Limiter) {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.NormalizeURL)                // trailing slashes, /ru/ prefix and .html removal
	router.Use(set_request_context.WithRequestContext) // needed for everything else
	router.Use(middleware.SetResponseHeaders)          // all pages need this

	if lim != nil {
		router.Use(lim.Evaluate)
	}
}
