// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package checker

import (
	"io"
	"log/slog"

	"github.com/hashicorp/go-multierror"
)

// Validator runs a sequence of named checks against a template model and
// aggregates every failure, so a single run reports all offenders.
type Validator struct {
	checks []ValidatorCheck
	log    *slog.Logger
}

// ValidatorCheck is a named validation to be performed.
// Use closures to capture the subject of the check, such as the template model.
type ValidatorCheck struct {
	name string
	f    ValidateFunc
}

// NewValidatorCheck creates a new ValidatorCheck with the given name and function.
func NewValidatorCheck(name string, f ValidateFunc) ValidatorCheck {
	return ValidatorCheck{
		name: name,
		f:    f,
	}
}

// ValidateFunc is a function type that returns an error if the validation fails.
type ValidateFunc func() error

// NewValidator creates a new Validator with the given checks.
// Check progress is reported to log; a nil logger discards it.
func NewValidator(log *slog.Logger, c ...ValidatorCheck) Validator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Validator{
		checks: c,
		log:    log,
	}
}

// Validate runs all the checks in the Validator and returns the aggregated
// failures.
func (v Validator) Validate() error {
	var errs error

	for _, c := range v.checks {
		v.log.Debug("starting check", "name", c.name)
		if err := c.f(); err != nil {
			v.log.Debug("check failed", "name", c.name, "error", err)
			errs = multierror.Append(errs, err)
			continue
		}
		v.log.Debug("finished check", "name", c.name)
	}

	return errs
}
