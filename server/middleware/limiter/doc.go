// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter rate limits state-changing requests, such as preference
toggles, per client network.

Clients are grouped into networks by a configurable IPv4 and IPv6 prefix
length and every network gets its own token bucket. Requests outside the
configured path prefixes are never limited.
*/
package limiter
