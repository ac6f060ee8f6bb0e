// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/vk/substationdsl/internal/app"
	"github.com/vk/substationdsl/internal/config"
	"github.com/vk/substationdsl/internal/export"
	"github.com/vk/substationdsl/internal/ir"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// command line grammar, decoded by kong.
type arguments struct {
	Config    string `help:"Path to an HCL settings file." placeholder:"FILE"`
	LogLevel  string `help:"Logging level: debug, info, warn or error. Overrides the settings file."`
	LogFormat string `help:"Log output format: text or json. Overrides the settings file."`
	Strict    bool   `help:"Enable strict validation rules (references, couplers, bays)."`

	Check   checkCmd   `cmd:"" help:"Parse and validate documents."`
	Dump    dumpCmd    `cmd:"" help:"Print the IR of a document as JSON or YAML."`
	Inspect inspectCmd `cmd:"" help:"Print a substation summary of each document."`
	Grammar grammarCmd `cmd:"" help:"Print the DSL grammar in EBNF notation."`
}

type checkCmd struct {
	Path string `arg:"" help:"A .sub file or a directory containing .sub files."`
}

type dumpCmd struct {
	Path   string `arg:"" help:"A .sub file."`
	Format string `short:"f" help:"Output format: json or yaml. Overrides the settings file."`
}

type inspectCmd struct {
	Path  string   `arg:"" help:"A .sub file or a directory containing .sub files."`
	Kinds []string `name:"kind" short:"k" enum:"${kinds}" placeholder:"KIND" help:"Only list these object kinds in the inventory and samples. Repeatable."`
}

type grammarCmd struct{}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var cli arguments
	// Set by kong after printing help.
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name("subdsl"),
		kong.Description("Substation topology DSL front end: parse, validate and inspect .sub documents."),
		kong.Writers(output, output),
		kong.Exit(func(code int) { exitCode = code }),
		kong.Vars{"kinds": kindEnum()},
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build CLI parser: %w", err)
	}

	if len(args) == 0 {
		slog.Debug("No arguments provided, printing usage and exiting.")
		args = []string{"--help"}
	}

	kctx, err := parser.Parse(args)
	if exitCode == 0 {
		return nil, true, nil
	}
	if exitCode > 0 {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid arguments"}
	}
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.", "command", kctx.Command())

	settings, err := config.NewLoader().Load(context.Background(), cli.Config)
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	merged := app.Config{
		LogLevel:     pick(cli.LogLevel, settings.Log.Level),
		LogFormat:    pick(cli.LogFormat, settings.Log.Format),
		Strict:       cli.Strict || settings.Validate.Strict,
		OutputFormat: export.Format(settings.Output.Format),
	}
	switch name := strings.Fields(kctx.Command())[0]; name {
	case "check":
		merged.Command, merged.Path = app.CommandCheck, cli.Check.Path
	case "dump":
		merged.Command, merged.Path = app.CommandDump, cli.Dump.Path
		merged.OutputFormat = export.Format(pick(cli.Dump.Format, settings.Output.Format))
	case "inspect":
		merged.Command, merged.Path = app.CommandInspect, cli.Inspect.Path
		for _, name := range cli.Inspect.Kinds {
			k, err := ir.ParseKind(name)
			if err != nil {
				return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
			}
			merged.Kinds = append(merged.Kinds, k)
		}
	case "grammar":
		merged.Command = app.CommandGrammar
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("unknown command %q", name)}
	}

	cfg, err := app.NewConfig(merged)
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

// kindEnum lists the object kind names for kong's enum check.
func kindEnum() string {
	kinds := ir.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ",")
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
