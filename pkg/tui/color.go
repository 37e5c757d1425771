// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tui decorates terminal output.
package tui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var isTerminalFn = term.IsTerminal

// Colorizer colors text when Enabled is set.
type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer for w. Color is used only when enabled
// is set, w is a terminal, NO_COLOR is unset and TERM is not dumb.
func NewColorizer(enabled bool, w io.Writer) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	t := os.Getenv("TERM")
	if t == "" || t == "dumb" {
		return Colorizer{}
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !isTerminalFn(int(f.Fd())) {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// Wrap returns text in the given attributes.
func (c Colorizer) Wrap(text string, attrs ...color.Attribute) string {
	if !c.Enabled || len(attrs) == 0 {
		return text
	}
	col := color.New(attrs...)
	col.EnableColor()
	return col.Sprint(text)
}

// Error styles an error label.
func (c Colorizer) Error(text string) string {
	return c.Wrap(text, color.FgRed, color.Bold)
}

// Warn styles a warning.
func (c Colorizer) Warn(text string) string {
	return c.Wrap(text, color.FgYellow)
}

// Dim styles secondary text.
func (c Colorizer) Dim(text string) string {
	return c.Wrap(text, color.FgHiBlack)
}
