// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema loads argument declarations from JSON, YAML or TOML files
// and turns them into an argparse.Parser.
package schema

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yeetrun/argspec/pkg/argparse"
	"github.com/yeetrun/argspec/pkg/codecutil"
	"github.com/yeetrun/argspec/pkg/ftdetect"
)

// File is a declaration file.
type File struct {
	Prog          string  `json:"prog" yaml:"prog" toml:"prog"`
	IgnoreUnknown bool    `json:"ignore_unknown" yaml:"ignore_unknown" toml:"ignore_unknown"`
	Groups        []Group `json:"groups" yaml:"groups" toml:"groups"`
}

// Group is a named list of argument entries. An empty name is the default
// group.
type Group struct {
	Name string  `json:"name" yaml:"name" toml:"name"`
	Args []Entry `json:"args" yaml:"args" toml:"args"`
}

// Entry is one argument declaration. The keys name, help, short and
// positional describe how the argument is matched; the other keys are the
// argparse.OptionsFromMap keywords, with proc naming a built-in transform.
type Entry map[string]any

// Load reads the declaration file at path. The format is detected from the
// file name or contents.
func Load(path string) (*File, error) {
	format, err := ftdetect.Detect(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect format of %s: %w", path, err)
	}
	return LoadFormat(path, format)
}

// LoadFormat reads the declaration file at path in the given format.
func LoadFormat(path string, format codecutil.Format) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema: %w", err)
	}
	defer f.Close()
	sf, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sf, nil
}

// Decode reads a declaration file from r. Unknown top-level and group keys
// are rejected.
func Decode(r io.Reader, format codecutil.Format) (*File, error) {
	var sf File
	if err := codecutil.Decode(r, format, &sf, true); err != nil {
		return nil, err
	}
	return &sf, nil
}

// Parser builds a parser with every declared argument registered. opts
// are applied after the file's own settings.
func (sf *File) Parser(opts ...argparse.ParserOption) (*argparse.Parser, error) {
	var popts []argparse.ParserOption
	if sf.Prog != "" {
		popts = append(popts, argparse.WithProg(sf.Prog))
	}
	if sf.IgnoreUnknown {
		popts = append(popts, argparse.WithIgnoreUnknown())
	}
	p := argparse.New(append(popts, opts...)...)

	for gi, g := range sf.Groups {
		name := g.Name
		if name == "" {
			name = argparse.DefaultGroup
		}
		args := make([]*argparse.Arg, len(g.Args))
		for i, e := range g.Args {
			a, err := e.Arg()
			if err != nil {
				return nil, fmt.Errorf("group %q (#%d) arg #%d: %w", name, gi, i, err)
			}
			args[i] = a
		}
		if err := p.AddGroup(name, args...); err != nil {
			return nil, fmt.Errorf("group %q (#%d): %w", name, gi, err)
		}
	}
	return p, nil
}

// Arg builds the declaration described by e.
func (e Entry) Arg() (*argparse.Arg, error) {
	kw := make(map[string]any, len(e))
	for k, v := range e {
		kw[k] = v
	}
	name, err := takeString(kw, "name")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", argparse.ErrConfig)
	}
	help, err := takeString(kw, "help")
	if err != nil {
		return nil, err
	}
	positional, err := takeBool(kw, "positional")
	if err != nil {
		return nil, err
	}

	var opts []argparse.Option
	if v, ok := kw["short"]; ok {
		delete(kw, "short")
		switch s := v.(type) {
		case string:
			opts = append(opts, argparse.Short(s))
		case bool:
			if !s {
				opts = append(opts, argparse.NoShort())
			}
		default:
			return nil, &argparse.ConfigError{Name: name, Err: fmt.Errorf("short must be a string or false (%T is given)", v)}
		}
	}
	if v, ok := kw["proc"]; ok && v != nil {
		pn, ok := v.(string)
		if !ok {
			return nil, &argparse.ConfigError{Name: name, Err: fmt.Errorf("proc must name a built-in transform (%T is given)", v)}
		}
		p, ok := procs[pn]
		if !ok {
			return nil, &argparse.ConfigError{Name: name, Err: fmt.Errorf("unknown proc %q (want one of %v)", pn, ProcNames())}
		}
		kw["proc"] = p
	}

	kwOpts, err := argparse.OptionsFromMap(kw)
	if err != nil {
		var ce *argparse.ConfigError
		if errors.As(err, &ce) && ce.Name == "" {
			ce.Name = name
		}
		return nil, err
	}
	opts = append(opts, kwOpts...)
	if positional {
		return argparse.Positional(name, help, opts...)
	}
	return argparse.Optional(name, help, opts...)
}

func takeString(kw map[string]any, key string) (string, error) {
	v, ok := kw[key]
	if !ok {
		return "", nil
	}
	delete(kw, key)
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string (%T is given)", argparse.ErrConfig, key, v)
	}
	return s, nil
}

func takeBool(kw map[string]any, key string) (bool, error) {
	v, ok := kw[key]
	if !ok {
		return false, nil
	}
	delete(kw, key)
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a bool (%T is given)", argparse.ErrConfig, key, v)
	}
	return b, nil
}
