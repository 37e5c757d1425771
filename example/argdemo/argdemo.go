// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argdemo declares its arguments in code and prints what it parsed.
//
//	argdemo -w 800 --format png -v out.png in.jpg
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/yeetrun/argspec/pkg/argparse"
)

func main() {
	log.SetFlags(0)

	p := argparse.New()
	err := p.Add(
		argparse.MustOptional("width", "target width in pixels", argparse.Default(640)),
		argparse.MustOptional("scale", "scale factor", argparse.Default(1.0), argparse.NoShort()),
		argparse.MustOptional("format", "output format", argparse.Choices("png", "jpeg", "gif")),
		argparse.MustOptional("verbose", "log more", argparse.Flag()),
		argparse.MustPositional("src", "input image"),
		argparse.MustPositional("dst", "output image"),
	)
	if err != nil {
		log.Fatal(err)
	}
	err = p.AddGroup("meta",
		argparse.MustOptional("tag", "tag to attach",
			argparse.Proc(argparse.TransformFunc(func(v any) (any, error) {
				return strings.ToLower(v.(string)), nil
			}))),
	)
	if err != nil {
		log.Fatal(err)
	}

	res := p.ParseOrExit(os.Args[1:])
	opts := res.Group(argparse.DefaultGroup)
	if opts["verbose"].(bool) {
		log.Printf("parsed %v", res)
	}
	// Positionals fill from the last declared one, so with two tokens the
	// first lands in dst.
	fmt.Printf("%s -> %s at width %d (scale %g)\n", opts["src"], opts["dst"], opts["width"], opts["scale"])
	if f := opts["format"]; f != nil {
		fmt.Printf("format: %s\n", f)
	}
	if tag, _ := res.Lookup("tag"); tag != nil {
		fmt.Printf("tag: %s\n", tag)
	}
}
