// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/substationdsl/internal/ctxlog"
)

// HCLLoader is the HCL implementation of the Loader interface.
type HCLLoader struct{}

// NewLoader creates a new HCL settings loader.
func NewLoader() *HCLLoader {
	return &HCLLoader{}
}

// fileRoot is the decode target for a settings file. Unknown blocks and
// attributes are rejected by gohcl.
type fileRoot struct {
	Log      *logBlock      `hcl:"log,block"`
	Validate *validateBlock `hcl:"validate,block"`
	Output   *outputBlock   `hcl:"output,block"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

type validateBlock struct {
	Strict *bool `hcl:"strict,optional"`
}

type outputBlock struct {
	Format *string `hcl:"format,optional"`
}

// Load parses the HCL file at path and overlays it on Defaults.
func (l *HCLLoader) Load(ctx context.Context, path string) (*Settings, error) {
	logger := ctxlog.FromContext(ctx)
	settings := Defaults()
	if path == "" {
		logger.Debug("No settings file given, using defaults.")
		return settings, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return l.decode(ctx, path, src, settings)
}

func (l *HCLLoader) decode(ctx context.Context, path string, src []byte, settings *Settings) (*Settings, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", path, diags)
	}

	if root.Log != nil {
		if root.Log.Level != nil {
			settings.Log.Level = *root.Log.Level
		}
		if root.Log.Format != nil {
			settings.Log.Format = *root.Log.Format
		}
	}
	if root.Validate != nil && root.Validate.Strict != nil {
		settings.Validate.Strict = *root.Validate.Strict
	}
	if root.Output != nil && root.Output.Format != nil {
		settings.Output.Format = *root.Output.Format
	}

	logger.Debug("Settings file loaded.", "path", path,
		"log_level", settings.Log.Level, "log_format", settings.Log.Format,
		"strict", settings.Validate.Strict, "output_format", settings.Output.Format)
	return settings, nil
}
