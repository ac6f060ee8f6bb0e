// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import "context"

// Loader is the interface for a format-specific settings loader.
type Loader interface {
	// Load reads the settings file at path. An empty path yields Defaults.
	Load(ctx context.Context, path string) (*Settings, error)
}
