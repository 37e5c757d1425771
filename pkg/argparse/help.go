// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const helpIndent = "    "

// Usage returns the one-line synopsis: the program name followed by the
// positional arguments in declaration order.
func (p *Parser) Usage() string {
	parts := []string{"usage:", p.prog}
	for _, a := range p.positionals {
		parts = append(parts, strings.ToUpper(a.Name))
	}
	return strings.Join(parts, " ")
}

// Help returns the positional and optional arguments as aligned columns.
func (p *Parser) Help() string {
	type line struct {
		header string
		row    [5]string
	}
	var lines []line
	if len(p.positionals) > 0 {
		lines = append(lines, line{header: " positionals:"})
		for _, a := range p.positionals {
			lines = append(lines, line{row: a.UsageRow()})
		}
	}
	lines = append(lines, line{header: " optionals:"})
	for _, a := range p.Optionals() {
		lines = append(lines, line{row: a.UsageRow()})
	}

	var widths [5]int
	for _, l := range lines {
		if l.header != "" {
			continue
		}
		for i, col := range l.row {
			widths[i] = max(widths[i], runewidth.StringWidth(col))
		}
	}

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		if l.header != "" {
			b.WriteString(l.header)
			continue
		}
		cols := make([]string, len(l.row))
		for j, col := range l.row {
			cols[j] = runewidth.FillRight(col, widths[j])
		}
		b.WriteString(strings.TrimRight(helpIndent+strings.Join(cols, helpIndent), " "))
	}
	return b.String()
}

// ParseOrExit parses tokens and returns the result. When help is
// requested it prints the usage line and help to stdout and exits with
// status 0; on any other error it prints the error and the usage line to
// stderr and exits with status 1.
func (p *Parser) ParseOrExit(tokens []string) Result {
	res, err := p.Parse(tokens)
	switch {
	case err == nil:
		return res
	case errors.Is(err, ErrHelp):
		fmt.Fprintf(p.stdout, "%s\n\n%s\n", p.Usage(), p.Help())
		p.exit(0)
	default:
		fmt.Fprintf(p.stderr, "%s: error: %v\n\n%s\n", p.prog, err, p.Usage())
		p.exit(1)
	}
	return nil
}
