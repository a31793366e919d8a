// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package page

import (
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/docs-ru/docs-ru/core/preference"
)

const reactivityPage = `---
title: Основы реактивности
outline: [2, 3]
---

# Основы реактивности

Вступление для всех.

<div class="options-api">

## Объявление реактивного состояния

В Options API используется опция ` + "`data`" + `.

## Пример

</div>
<div class="composition-api">

## Объявление реактивного состояния

В Composition API используется [ref](./ref.md#details).

## Пример

` + "```js" + `
</div>
const count = ref(0)
` + "```" + `

</div>

## Пример

Общий текст.
`

func prefs(t *testing.T, composition, sfc bool) *preference.Store {
	t.Helper()

	s := preference.NewStore(nil)
	require.NoError(t, s.Set(preference.PreferComposition, composition))
	require.NoError(t, s.Set(preference.PreferSFC, sfc))

	return s
}
