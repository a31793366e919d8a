// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware holds the HTTP middleware chain and CatchError, the
adapter that turns error-returning handlers into http.HandlerFunc values.

The chain itself is assembled in package router.
*/
package middleware
