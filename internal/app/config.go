// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/substationdsl/internal/export"
	"github.com/vk/substationdsl/internal/ir"
)

// Command selects what Run does with the documents found at Config.Path.
type Command string

const (
	CommandCheck   Command = "check"
	CommandDump    Command = "dump"
	CommandInspect Command = "inspect"
	CommandGrammar Command = "grammar"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command Command
	Path    string // a .sub file or a directory of them; unused by grammar

	LogFormat    string
	LogLevel     string
	Strict       bool
	OutputFormat export.Format

	// Kinds restricts the inspect inventory and samples. Empty means all.
	Kinds []ir.Kind
}

// NewConfig validates cfg and returns a normalized copy.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case CommandCheck, CommandDump, CommandInspect:
		if cfg.Path == "" {
			return nil, errors.New("Path is a required configuration field and cannot be empty")
		}
	case CommandGrammar:
	default:
		return nil, fmt.Errorf("invalid command %q: must be one of [check, dump, inspect, grammar]", cfg.Command)
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if _, ok := parseLevel(cfg.LogLevel); !ok {
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	format, err := export.ParseFormat(string(cfg.OutputFormat))
	if err != nil {
		return nil, err
	}
	cfg.OutputFormat = format

	return &cfg, nil
}
