// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package heading assigns anchors to the headings a reader can actually see
// and nests them into a table of contents.
package heading
