// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yeetrun/argspec/pkg/argparse"
)

// procs are the transforms a declaration file can name in its proc key.
var procs = map[string]argparse.TransformFunc{
	"exists": textProc(func(s string) (any, error) {
		if _, err := os.Stat(s); err != nil {
			return nil, fmt.Errorf("%s does not exist", s)
		}
		return s, nil
	}),
	"dir": textProc(func(s string) (any, error) {
		fi, err := os.Stat(s)
		if err != nil {
			return nil, fmt.Errorf("%s does not exist", s)
		}
		if !fi.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", s)
		}
		return s, nil
	}),
	"abs": textProc(func(s string) (any, error) {
		return filepath.Abs(s)
	}),
	"lower": textProc(func(s string) (any, error) { return strings.ToLower(s), nil }),
	"upper": textProc(func(s string) (any, error) { return strings.ToUpper(s), nil }),
	"trim":  textProc(func(s string) (any, error) { return strings.TrimSpace(s), nil }),
}

// ProcNames returns the names accepted by the proc key, sorted.
func ProcNames() []string {
	names := make([]string, 0, len(procs))
	for n := range procs {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// textProc adapts fn to values that are text or symbols.
func textProc(fn func(string) (any, error)) argparse.TransformFunc {
	return func(v any) (any, error) {
		switch s := v.(type) {
		case string:
			return fn(s)
		case argparse.Symbol:
			return fn(s.String())
		}
		return nil, fmt.Errorf("expects text (%T is given)", v)
	}
}
