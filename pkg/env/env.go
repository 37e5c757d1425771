// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env writes parsed argument values as shell variable assignments.
package env

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Write writes one NAME=value line per value in groups, sorted by name.
// Values in the group named defaultGroup use the upper-cased argument name;
// other groups prefix it with the upper-cased group name. Nil values are
// omitted. Values are single-quoted for POSIX shells.
func Write(w io.Writer, groups map[string]map[string]any, defaultGroup string) error {
	lines := make(map[string]string)
	for g, vals := range groups {
		for name, v := range vals {
			if v == nil {
				continue
			}
			key := varName(name)
			if g != defaultGroup {
				key = varName(g) + "_" + key
			}
			if _, ok := lines[key]; ok {
				return fmt.Errorf("variable %s is produced twice", key)
			}
			lines[key] = quote(fmt.Sprint(v))
		}
	}
	keys := make([]string, 0, len(lines))
	for k := range lines {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, lines[k]); err != nil {
			return err
		}
	}
	return nil
}

// varName upper-cases s and replaces every byte that is not valid in a
// shell variable name with an underscore.
func varName(s string) string {
	b := []byte(strings.ToUpper(s))
	for i, c := range b {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' {
			b[i] = '_'
		}
	}
	if len(b) > 0 && b[0] >= '0' && b[0] <= '9' {
		return "_" + string(b)
	}
	return string(b)
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
