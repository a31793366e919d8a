// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package preference holds the reader's global code-style preferences.

A [Store] owns a fixed set of boolean preferences ("prefer-composition" and
"prefer-sfc"). Values are read from a [Backend] once, at construction, and
written back on every [Store.Set]. Subscribers registered with
[Store.Subscribe] are notified synchronously, in subscription order, before
the value is persisted, so a slow or failing backend never delays what the
reader sees.

A Store is meant to be constructed once per session and passed to every
consumer; in the HTTP server a session is one request, backed by cookies.
*/
package preference
