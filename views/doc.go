// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package views holds the HTML components of the site.

Components implement templ.Component and translate their labels with the
locale carried by the render context.
*/
package views
