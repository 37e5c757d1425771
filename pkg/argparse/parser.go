// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map"
)

// Parser holds a set of argument declarations and parses command lines
// against them. A Parser is meant to be built, used for one Parse and
// discarded; it must not be shared between goroutines.
type Parser struct {
	byLong      *orderedmap.OrderedMap // long form -> *Arg, in registration order
	byShort     map[string]*Arg
	positionals []*Arg
	names       map[string]bool
	help        *Arg

	ignoreUnknown bool
	prog          string
	stdout        io.Writer
	stderr        io.Writer
	exit          func(int)
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithIgnoreUnknown makes Parse skip tokens that match no declaration
// instead of failing.
func WithIgnoreUnknown() ParserOption {
	return func(p *Parser) { p.ignoreUnknown = true }
}

// WithProg sets the program name shown in the usage line. It defaults to
// the base name of os.Args[0].
func WithProg(name string) ParserOption {
	return func(p *Parser) { p.prog = name }
}

// WithOutput sets where ParseOrExit writes help and errors.
func WithOutput(stdout, stderr io.Writer) ParserOption {
	return func(p *Parser) {
		p.stdout = stdout
		p.stderr = stderr
	}
}

// WithExit replaces os.Exit in ParseOrExit.
func WithExit(fn func(int)) ParserOption {
	return func(p *Parser) { p.exit = fn }
}

// New returns a Parser with only the built-in --help/-h flag registered.
func New(opts ...ParserOption) *Parser {
	help := MustOptional(helpName, "to show help", Flag())
	p := &Parser{
		byLong:  orderedmap.New(),
		byShort: map[string]*Arg{help.Short: help},
		names:   make(map[string]bool),
		help:    help,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
	if len(os.Args) > 0 {
		p.prog = filepath.Base(os.Args[0])
	}
	p.byLong.Set(help.Long, help)
	for _, o := range opts {
		o(p)
	}
	return p
}

// Add registers args in DefaultGroup.
func (p *Parser) Add(args ...*Arg) error {
	return p.AddGroup(DefaultGroup, args...)
}

// AddGroup registers args under group. Either all of args are registered
// or, on a *ConfigError, none are.
func (p *Parser) AddGroup(group string, args ...*Arg) error {
	if group == "" {
		group = DefaultGroup
	}
	names := make(map[string]bool)
	longs := make(map[string]*Arg)
	shorts := make(map[string]*Arg)
	for i, a := range args {
		if a == nil {
			return configErrorf("", "arg %d is nil", i)
		}
		if a.Group != "" {
			return configErrorf(a.Name, "already registered in group %q", a.Group)
		}
		if a.Name == helpName {
			return configErrorf(a.Name, "opt name %q is reserved", helpName)
		}
		if p.names[a.Name] || names[a.Name] {
			return configErrorf(a.Name, "opt name %q already taken", a.Name)
		}
		names[a.Name] = true
		if a.positional {
			continue
		}
		if other, ok := p.lookupLong(a.Long); ok {
			return configErrorf(a.Name, "long option %q is already taken by %v", a.Long, other)
		}
		if other, ok := longs[a.Long]; ok {
			return configErrorf(a.Name, "long option %q is already taken by %v", a.Long, other)
		}
		longs[a.Long] = a
		if a.Short == "" {
			continue
		}
		if other, ok := p.byShort[a.Short]; ok {
			return configErrorf(a.Name, "short option %q is already taken by %v", a.Short, other)
		}
		if other, ok := shorts[a.Short]; ok {
			return configErrorf(a.Name, "short option %q is already taken by %v", a.Short, other)
		}
		shorts[a.Short] = a
	}

	for _, a := range args {
		a.Group = group
		p.names[a.Name] = true
		if a.positional {
			p.positionals = append(p.positionals, a)
			continue
		}
		p.byLong.Set(a.Long, a)
		if a.Short != "" {
			p.byShort[a.Short] = a
		}
	}
	return nil
}

func (p *Parser) lookupLong(long string) (*Arg, bool) {
	v, ok := p.byLong.Get(long)
	if !ok {
		return nil, false
	}
	return v.(*Arg), true
}

// Optionals returns the optional arguments, including the built-in help
// flag, in registration order.
func (p *Parser) Optionals() []*Arg {
	out := make([]*Arg, 0, p.byLong.Len())
	for pair := p.byLong.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value.(*Arg))
	}
	return out
}

// Positionals returns the positional arguments in declaration order.
func (p *Parser) Positionals() []*Arg {
	return slices.Clone(p.positionals)
}

// Parse matches tokens against the registered arguments and returns the
// values grouped by argument group. Unmatched optionals take their
// default. Parse returns ErrHelp as soon as the help option is seen.
//
// Plain tokens are matched against positional arguments starting from the
// last declared one: with positionals A then B, the first plain token goes
// to B and the second to A.
func (p *Parser) Parse(tokens []string) (Result, error) {
	res, _, err := p.ParseKnown(tokens)
	return res, err
}

// ParseKnown is like Parse but also returns the tokens that were skipped
// because they matched nothing. Tokens are only skipped when the Parser
// was created with WithIgnoreUnknown.
func (p *Parser) ParseKnown(tokens []string) (Result, []string, error) {
	q := newTokenQueue(tokens)
	remaining := slices.Clone(p.positionals)
	parsed := make(map[string]any)

	for q.len() > 0 {
		tok, _ := q.peek()
		var a *Arg
		if strings.HasPrefix(tok, "-") {
			a = p.matchOption(q, tok)
			if a == nil {
				if p.ignoreUnknown {
					q.skip()
					continue
				}
				return nil, nil, &UnknownOptionError{Token: tok}
			}
		} else {
			if len(remaining) == 0 {
				if p.ignoreUnknown {
					q.skip()
					continue
				}
				return nil, nil, &UnknownPositionalError{Token: tok}
			}
			a = remaining[len(remaining)-1]
			remaining = remaining[:len(remaining)-1]
		}

		if _, ok := parsed[a.Name]; ok {
			return nil, nil, &DuplicateOptionError{Name: a.Name}
		}
		if a == p.help {
			return nil, nil, ErrHelp
		}
		v, err := a.parse(q)
		if err != nil {
			return nil, nil, &ValueError{Option: a.identity(), Err: err}
		}
		parsed[a.Name] = v
	}

	if len(remaining) > 0 {
		missing := make([]string, len(remaining))
		for i, a := range remaining {
			missing[i] = strings.ToUpper(a.Name)
		}
		return nil, nil, &MissingPositionalError{Names: missing}
	}
	return p.result(parsed), q.skipped, nil
}

// matchOption finds the option for the dash-prefixed token at the front
// of q. A long form or a complete short form is consumed. A short form
// followed by more text is split: after a flag the rest is put back as
// "-rest" so bundled flags are matched one by one, and after any other
// option the rest is put back bare to be read as its value.
func (p *Parser) matchOption(q *tokenQueue, tok string) *Arg {
	if a, ok := p.lookupLong(tok); ok {
		q.pop()
		return a
	}
	if a, ok := p.byShort[tok]; ok {
		q.pop()
		return a
	}
	if len(tok) < 2 {
		return nil
	}
	_, size := utf8.DecodeRuneInString(tok[1:])
	prefix, rest := tok[:1+size], tok[1+size:]
	a, ok := p.byShort[prefix]
	if !ok || rest == "" {
		return nil
	}
	if a.IsFlag() {
		q.replace("-" + rest)
	} else {
		q.replace(rest)
	}
	return a
}

func (p *Parser) result(parsed map[string]any) Result {
	res := make(Result)
	add := func(a *Arg) {
		if a.Group == "" {
			return
		}
		g, ok := res[a.Group]
		if !ok {
			g = make(map[string]any)
			res[a.Group] = g
		}
		if v, ok := parsed[a.Name]; ok {
			g[a.Name] = v
		} else {
			g[a.Name] = a.Default
		}
	}
	for pair := p.byLong.Oldest(); pair != nil; pair = pair.Next() {
		add(pair.Value.(*Arg))
	}
	for _, a := range p.positionals {
		add(a)
	}
	return res
}
