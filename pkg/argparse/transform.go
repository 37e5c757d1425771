// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNotInChoices is wrapped by the error returned when a value is not one
// of the declared choices.
var ErrNotInChoices = errors.New("value not in choices")

// A Transform converts or validates one argument value. Casting, choice
// checks and user supplied procs are all Transforms and run as one chain.
type Transform interface {
	Apply(v any) (any, error)
}

// TransformFunc adapts an ordinary function to the Transform interface.
type TransformFunc func(v any) (any, error)

// Apply calls f(v).
func (f TransformFunc) Apply(v any) (any, error) {
	return f(v)
}

// chain runs each transform on the output of the previous one.
type chain []Transform

func (c chain) Apply(v any) (any, error) {
	var err error
	for _, t := range c {
		if v, err = t.Apply(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// castTransform converts a raw token string to the declared type.
type castTransform Type

func (c castTransform) Apply(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	return Type(c).cast(s)
}

// choiceTransform rejects values that are not members of the choice set.
type choiceTransform struct {
	typ     Type
	choices []any
}

func (c choiceTransform) Apply(v any) (any, error) {
	if slices.Contains(c.choices, v) {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s is not in %s", ErrNotInChoices, c.typ.format(v), formatChoices(c.typ, c.choices))
}

func formatChoices(t Type, choices []any) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		if c == nil {
			parts[i] = "nil"
			continue
		}
		parts[i] = t.format(c)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// asTransform accepts the value forms allowed for the proc option.
func asTransform(v any) (Transform, bool) {
	switch p := v.(type) {
	case TransformFunc:
		return p, p != nil
	case func(any) (any, error):
		return TransformFunc(p), p != nil
	case Transform:
		return p, true
	}
	return nil, false
}
