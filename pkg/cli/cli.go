// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli parses the argspec tool's own command line.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"
	"github.com/shayne/yargs"
	"github.com/yeetrun/argspec/pkg/codecutil"
)

// SchemaEnv names the environment variable read when --schema is not
// given.
const SchemaEnv = "ARGSPEC_SCHEMA"

const formatEnv = "env"

// ErrUsage is wrapped by every error caused by a malformed tool command
// line.
var ErrUsage = errors.New("usage error")

// Usage is the tool's help text.
const Usage = `argspec - parse a command line against a declaration file

USAGE:
    argspec [OPTIONS] -- ARGS...
    argspec [OPTIONS] --line "ARGS"

OPTIONS:
    -s, --schema FILE       Declaration file, JSON, YAML or TOML (` + SchemaEnv + `)
    -f, --format FORMAT     Output format: json, yaml, toml or env (default json)
        --ignore-unknown    Skip tokens that match no declaration
        --prog NAME         Program name shown in usage lines
    -l, --line ARGS         Parse ARGS split with shell quoting rules
        --no-color          Never color errors
    -v, --verbose           Log what argspec is doing
    -h, --help              Show this help

Everything after -- is parsed against the declaration file. The parsed
values are written to stdout grouped by argument group. Write
--line=ARGS when ARGS starts with a dash.
`

// ToolFlags are the tool's options.
type ToolFlags struct {
	Schema        string
	Format        codecutil.Format
	Env           bool // shell assignments instead of Format
	IgnoreUnknown bool
	Prog          string
	Line          string
	NoColor       bool
	Verbose       bool
	Help          bool
}

type toolFlagsParsed struct {
	Schema        string `flag:"schema" short:"s" help:"Declaration file"`
	Format        string `flag:"format" short:"f" default:"json" help:"Output format"`
	IgnoreUnknown bool   `flag:"ignore-unknown" help:"Skip unmatched tokens"`
	Prog          string `flag:"prog" help:"Program name"`
	Line          string `flag:"line" short:"l" help:"Command line to split"`
	NoColor       bool   `flag:"no-color" help:"Never color errors"`
	Verbose       bool   `flag:"verbose" short:"v" help:"Verbose logging"`
	Help          bool   `flag:"help" short:"h" help:"Show help"`
}

// Invocation is a parsed tool command line.
type Invocation struct {
	Flags  ToolFlags
	Tokens []string // the command line to parse against the schema
}

// ParseTool parses args, the tool's arguments without the program name.
// The tokens to parse come from --line or from everything after "--".
func ParseTool(args []string) (Invocation, error) {
	parseArgs, tokens := splitArgsAtDoubleDash(args)
	parsed, err := parseFlags[toolFlagsParsed](parseArgs)
	if err != nil {
		return Invocation{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	flags := ToolFlags{
		Schema:        parsed.Flags.Schema,
		IgnoreUnknown: parsed.Flags.IgnoreUnknown,
		Prog:          parsed.Flags.Prog,
		Line:          parsed.Flags.Line,
		NoColor:       parsed.Flags.NoColor,
		Verbose:       parsed.Flags.Verbose,
		Help:          parsed.Flags.Help,
	}
	if flags.Help {
		return Invocation{Flags: flags}, nil
	}
	if len(parsed.Args) > 0 {
		return Invocation{}, fmt.Errorf("%w: unexpected argument %q before --", ErrUsage, parsed.Args[0])
	}
	if strings.EqualFold(parsed.Flags.Format, formatEnv) {
		flags.Env = true
	} else if flags.Format, err = codecutil.ParseFormat(parsed.Flags.Format); err != nil {
		return Invocation{}, fmt.Errorf("%w: --format: %w", ErrUsage, err)
	}

	if flags.Line != "" {
		if tokens != nil {
			return Invocation{}, fmt.Errorf("%w: --line cannot be combined with arguments after --", ErrUsage)
		}
		if tokens, err = shlex.Split(flags.Line); err != nil {
			return Invocation{}, fmt.Errorf("%w: --line: %w", ErrUsage, err)
		}
	}
	return Invocation{Flags: flags, Tokens: tokens}, nil
}

type parsedFlags[T any] struct {
	Flags T
	Args  []string
}

func parseFlags[T any](args []string) (parsedFlags[T], error) {
	result, err := yargs.ParseFlags[T](args)
	if err != nil {
		return parsedFlags[T]{}, err
	}
	argsOut := append([]string{}, result.Args...)
	if len(result.RemainingArgs) > 0 {
		argsOut = append(argsOut, result.RemainingArgs...)
	}
	return parsedFlags[T]{Flags: result.Flags, Args: argsOut}, nil
}

// splitArgsAtDoubleDash splits args at the first "--". The second result
// is nil when there is no "--" and empty, not nil, when nothing follows it.
func splitArgsAtDoubleDash(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], append([]string{}, args[i+1:]...)
		}
	}
	return args, nil
}
