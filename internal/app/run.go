// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/substationdsl/internal/ctxlog"
	"github.com/vk/substationdsl/internal/dsl"
	"github.com/vk/substationdsl/internal/dslerr"
	"github.com/vk/substationdsl/internal/export"
	"github.com/vk/substationdsl/internal/fsutil"
	"github.com/vk/substationdsl/internal/ir"
	"github.com/vk/substationdsl/internal/topology"
	"github.com/vk/substationdsl/internal/validate"
)

// ErrNoDocuments is returned when Config.Path holds no DSL documents.
var ErrNoDocuments = errors.New("no documents found")

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command, "path", a.config.Path)

	if a.config.Command == CommandGrammar {
		return a.printGrammar()
	}

	files, err := fsutil.FindFilesByExtension(a.config.Path, DocumentExtension)
	if err != nil {
		return fmt.Errorf("failed to discover documents: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no %s files under %s", ErrNoDocuments, DocumentExtension, a.config.Path)
	}
	a.logger.Debug("Discovered documents.", "count", len(files))

	switch a.config.Command {
	case CommandCheck:
		err = a.check(ctx, files)
	case CommandDump:
		err = a.dump(ctx, files)
	case CommandInspect:
		err = a.inspect(ctx, files)
	default:
		err = fmt.Errorf("invalid command %q", a.config.Command)
	}

	a.logger.Debug("App.Run method finished.", "error", err)
	return err
}

// check parses and validates every file. Failures do not stop the run; they
// are joined into the returned error.
func (a *App) check(ctx context.Context, files []string) error {
	var errs []error
	for _, path := range files {
		r, err := dsl.ParseFile(ctx, path)
		if err == nil {
			err = a.validate(ctx, r)
		}
		if err != nil {
			a.logger.Warn("Document rejected.", "file", path, "code", dslerr.CodeOf(err))
			errs = append(errs, fileError(path, err))
			continue
		}
		a.emitSpec(path, r)
		fmt.Fprintf(a.outW, "OK %s objects=%d chains=%d fingerprint=%s\n",
			path, r.NumObjects(), len(r.Chains()), r.Fingerprint())
	}

	a.logger.Info("Check finished.", "files", len(files), "failed", len(errs))
	return errors.Join(errs...)
}

func (a *App) dump(ctx context.Context, files []string) error {
	if len(files) > 1 {
		return fmt.Errorf("dump takes a single document, found %d under %s", len(files), a.config.Path)
	}

	r, err := a.load(ctx, files[0])
	if err != nil {
		return err
	}
	return export.Write(a.outW, r, a.config.OutputFormat)
}

func (a *App) inspect(ctx context.Context, files []string) error {
	for i, path := range files {
		r, err := a.load(ctx, path)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(a.outW)
		}
		s := topology.Summarize(ctx, r)
		if len(a.config.Kinds) > 0 {
			s.OnlyKinds(a.config.Kinds...)
		}
		writeSummary(a.outW, path, s)
	}
	return nil
}

func (a *App) printGrammar() error {
	src, err := dsl.Grammar()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.outW, src)
	return err
}

// load parses path and validates it when the document carries a VALIDATE
// directive.
func (a *App) load(ctx context.Context, path string) (*ir.IR, error) {
	r, err := dsl.ParseFile(ctx, path)
	if err != nil {
		return nil, fileError(path, err)
	}
	if r.HasDirective(ir.DirectiveValidate) {
		a.logger.Debug("VALIDATE directive found, validating.", "file", path)
		if err := a.validate(ctx, r); err != nil {
			return nil, fileError(path, err)
		}
	}
	a.emitSpec(path, r)
	return r, nil
}

func (a *App) validate(ctx context.Context, r *ir.IR) error {
	var opts []validate.Option
	if a.config.Strict {
		opts = append(opts, validate.WithStrict())
	}
	return dsl.Validate(ctx, r, opts...)
}

// emitSpec logs EMIT_SPEC directives. Spec generation belongs to the
// downstream exporter.
func (a *App) emitSpec(path string, r *ir.IR) {
	for _, d := range r.Directives() {
		if d.Kind != ir.DirectiveEmitSpec {
			continue
		}
		a.logger.Info("EMIT_SPEC delegated to external exporter.", "file", path, "line", d.Loc.Line, "options", d.Attrs.String())
	}
}

// fileError prefixes err with path unless err already names the file.
func fileError(path string, err error) error {
	var se *dslerr.SyntaxError
	if errors.As(err, &se) && se.Filename != "" {
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}
