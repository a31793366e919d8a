// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package page

import "errors"

var (
	ErrPageNotFound         = errors.New("page not found")
	ErrInvalidPath          = errors.New("invalid page path")
	ErrUnterminatedVariant  = errors.New("variant region is not closed")
	ErrUnterminatedMeta     = errors.New("front matter is not closed")
	ErrInvalidOutline       = errors.New("outline must be a level, a [min, max] pair or \"deep\"")
	ErrLibraryNotConfigured = errors.New("library has no content source")
)
