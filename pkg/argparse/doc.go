// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argparse declares command-line arguments and parses raw argument
// lists into typed values grouped by caller-defined categories.
//
// # Basic Usage
//
//	p := argparse.New(argparse.WithProg("resize"))
//	err := p.Add(
//	    argparse.MustOptional("width", "target width", argparse.Default(640)),
//	    argparse.MustOptional("verbose", "log more", argparse.Flag()),
//	    argparse.MustPositional("src", "input image"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := p.ParseOrExit(os.Args[1:])
//	width := res["default"]["width"].(int)
//
// # Declarations
//
// Optional arguments have a long form derived from the name ("max_size"
// becomes "--max-size") and a short form made of a dash and the first
// character of the name ("-m"). Short overrides the short form and
// NoShort removes it. Two declarations whose derived short forms collide
// are rejected when registered; nothing is overridden silently.
//
// An argument whose default is a bool is a flag: giving it flips the
// default and consumes no value. Other arguments take exactly one value,
// converted to one of four types:
//   - Integer (int), parsed strictly with base prefixes (0x, 0o, 0b)
//   - Float (float64)
//   - Text (string), the token unchanged
//   - Symbol, an interned string
//
// The type is inferred from the default, then from the choices, when
// WithType is not given. Choices restrict the accepted values and Proc
// runs a caller supplied Transform after the cast and the choice check.
//
// # Token Syntax
//
//   - Long options: --width 800
//   - Short options: -w 800 or -w800
//   - Bundled flags: -vq is -v -q
//   - Positionals: plain tokens, in any position
//
// Plain tokens fill positional arguments from the last declared one
// backwards. With positionals SRC then DST declared in that order, the
// command line "a b" assigns DST=a and SRC=b. Every positional must be
// filled.
//
// # Errors
//
// Parse returns ErrHelp when --help or -h is seen, before any
// completeness check. Other failures are typed so callers can inspect them
// with errors.As: *UnknownOptionError, *UnknownPositionalError,
// *DuplicateOptionError, *ValueError and *MissingPositionalError.
// Declaration mistakes are *ConfigError values and match ErrConfig.
//
// With WithIgnoreUnknown, unmatched tokens are skipped instead; ParseKnown
// returns them.
package argparse
