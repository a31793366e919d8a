// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package heading

import "errors"

var ErrUnknownSlugMode = errors.New("unknown slug mode")
