// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

// Settings is the unified representation of the tool settings.
type Settings struct {
	Log      LogSettings
	Validate ValidateSettings
	Output   OutputSettings
}

// LogSettings configures the slog handler.
type LogSettings struct {
	Level  string // debug|info|warn|error
	Format string // text|json
}

// ValidateSettings configures the semantic validator.
type ValidateSettings struct {
	Strict bool
}

// OutputSettings configures the dump command.
type OutputSettings struct {
	Format string // json|yaml
}

// Defaults returns the settings used when no file is given.
func Defaults() *Settings {
	return &Settings{
		Log:    LogSettings{Level: "info", Format: "text"},
		Output: OutputSettings{Format: "json"},
	}
}
