// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argspec parses a command line against a declaration file and
// prints the parsed values.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/yeetrun/argspec/pkg/argparse"
	"github.com/yeetrun/argspec/pkg/cli"
	"github.com/yeetrun/argspec/pkg/codecutil"
	"github.com/yeetrun/argspec/pkg/env"
	"github.com/yeetrun/argspec/pkg/schema"
	"github.com/yeetrun/argspec/pkg/tui"
)

const (
	exitOK    = 0
	exitParse = 1
	exitUsage = 2
)

var defaultSchema string

func init() {
	log.SetFlags(0)
	log.SetPrefix("argspec: ")
	if s := os.Getenv(cli.SchemaEnv); s != "" {
		defaultSchema = s
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)

	inv, err := cli.ParseTool(args)
	colors := tui.NewColorizer(!inv.Flags.NoColor, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s %v\n\n%s", colors.Error("error:"), err, cli.Usage)
		return exitUsage
	}
	if inv.Flags.Help {
		fmt.Fprint(stdout, cli.Usage)
		return exitOK
	}

	verbosef := func(format string, a ...any) {
		if inv.Flags.Verbose {
			log.Printf(format, a...)
		}
	}

	path := inv.Flags.Schema
	if path == "" {
		path = defaultSchema
	}
	if path == "" {
		fmt.Fprintf(stderr, "%s no declaration file: pass --schema or set %s\n", colors.Error("error:"), cli.SchemaEnv)
		return exitUsage
	}
	sf, err := schema.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "%s %v\n", colors.Error("error:"), err)
		return exitUsage
	}
	verbosef("loaded %s: %d group(s)", path, len(sf.Groups))

	var opts []argparse.ParserOption
	if inv.Flags.Prog != "" {
		opts = append(opts, argparse.WithProg(inv.Flags.Prog))
	}
	if inv.Flags.IgnoreUnknown {
		opts = append(opts, argparse.WithIgnoreUnknown())
	}
	p, err := sf.Parser(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "%s %v\n", colors.Error("error:"), err)
		return exitUsage
	}

	verbosef("parsing %q", inv.Tokens)
	res, skipped, err := p.ParseKnown(inv.Tokens)
	switch {
	case errors.Is(err, argparse.ErrHelp):
		fmt.Fprintf(stdout, "%s\n\n%s\n", p.Usage(), p.Help())
		return exitOK
	case err != nil:
		fmt.Fprintf(stderr, "%s %v\n\n%s\n", colors.Error("error:"), err, p.Usage())
		return exitParse
	}
	if len(skipped) > 0 {
		verbosef("skipped %q", skipped)
	}

	if inv.Flags.Env {
		err = env.Write(stdout, res, argparse.DefaultGroup)
	} else {
		err = codecutil.Encode(stdout, inv.Flags.Format, res)
	}
	if err != nil {
		log.Printf("%v", err)
		return exitParse
	}
	return exitOK
}
