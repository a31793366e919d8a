// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package page turns markdown files into documents made of variant blocks and
renders them for a set of reader preferences.

A variant region is written as a container on its own lines:

	<div class="composition-api">

	Markdown shown to readers who prefer the Composition API.

	</div>

Recognized classes are composition-api, options-api, sfc, non-sfc and html.
Everything outside a region is untagged and always shown.
*/
package page
