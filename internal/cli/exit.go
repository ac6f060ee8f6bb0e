// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"errors"

	"github.com/vk/substationdsl/internal/dslerr"
)

// Process exit codes.
const (
	ExitFailure  = 1
	ExitUsage    = 2
	ExitSyntax   = 3
	ExitSemantic = 4
)

// AsExitError maps err to the ExitError the process should terminate with.
// Syntax errors take precedence over semantic ones when err joins several.
func AsExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	code := ExitFailure
	var semErr *dslerr.SemanticError
	switch {
	case errors.Is(err, dslerr.ErrSyntax):
		code = ExitSyntax
	case errors.As(err, &semErr):
		code = ExitSemantic
	}
	return &ExitError{Code: code, Message: err.Error()}
}
