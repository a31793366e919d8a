// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package assets provides access to the application's embedded files: the
static assets under assets/ and the translation catalogues under po/.
*/
package assets

import (
	"embed"
)

// FS provides access to the embedded file system. It is assigned by the
// main package, which owns the go:embed directive.
var FS embed.FS
