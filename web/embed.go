// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package web

import "embed"

// Static holds the stylesheets and scripts served under /static/.
//
//go:embed all:static
var Static embed.FS
