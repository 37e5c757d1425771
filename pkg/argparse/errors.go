// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrHelp is returned by Parse when the help option was given. It is
	// not a failure: callers print Help and exit successfully.
	ErrHelp = errors.New("help requested")

	// ErrConfig matches every *ConfigError with errors.Is.
	ErrConfig = errors.New("invalid argument declaration")

	// ErrMissingValue is wrapped when an option expecting a value is the
	// last token.
	ErrMissingValue = errors.New("no value follows")
)

// ConfigError is returned when an argument declaration or registration is
// invalid.
type ConfigError struct {
	Name string // The argument name, empty if unknown.
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Name == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("arg %q: %v", e.Name, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func configErrorf(name, format string, a ...any) error {
	return &ConfigError{Name: name, Err: fmt.Errorf(format, a...)}
}

// UnknownOptionError is returned when a dash-prefixed token matches no
// declared option.
type UnknownOptionError struct {
	Token string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %s", e.Token)
}

// UnknownPositionalError is returned when a plain token arrives after
// every positional argument has been matched.
type UnknownPositionalError struct {
	Token string
}

func (e *UnknownPositionalError) Error() string {
	return fmt.Sprintf("unknown positional %s", e.Token)
}

// DuplicateOptionError is returned when an argument is matched twice.
type DuplicateOptionError struct {
	Name string
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("option %s parsed multiple times", e.Name)
}

// ValueError is returned when the value of a matched argument could not be
// extracted. Err is ErrMissingValue, a *CastError, an ErrNotInChoices
// wrapper or whatever the proc returned.
type ValueError struct {
	Option string // Long form for optionals, name for positionals.
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("error on parsing opt %q: %v", e.Option, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// MissingPositionalError is returned after parsing when positional
// arguments were left unmatched. Names lists all of them in declaration
// order.
type MissingPositionalError struct {
	Names []string
}

func (e *MissingPositionalError) Error() string {
	return fmt.Sprintf("positional %s required", strings.Join(e.Names, ", "))
}
