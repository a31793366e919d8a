// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package untrusted

import "errors"

var errReadOnlyBackend = errors.New("cookie backend has no response writer")
