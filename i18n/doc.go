// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n translates the UI chrome from gettext .po catalogues.

Message ids are the English UI text:

	i18n.Tr(ctx, "Preferences")
	i18n.TrN(ctx, "{{.Count}} page", "{{.Count}} pages", n, "Count", n)

The locale comes from the request context (see [WithRequest]); requests
without a usable preference get the default locale passed to [Setup].

Missing translations return the msgid. With strict missing keys enabled in
the configuration they are logged once and wrapped as "⟦msgid⟧".

Page prose is not translated here; it is authored in Russian.
*/
package i18n
