// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package variant decides which content blocks of a page are shown for the
reader's preferences.

A block carries at most one tag. Composition and Options blocks are paired
under the prefer-composition preference; SFC and NonSFC blocks are paired
under prefer-sfc. For every preference value exactly one block of a pair is
visible. Untagged blocks are always visible.
*/
package variant
