// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

// Result maps group name to argument name to value.
type Result map[string]map[string]any

// Group returns the values of one group, or nil if the group is unknown.
func (r Result) Group(name string) map[string]any {
	return r[name]
}

// Lookup finds the value of the named argument in any group.
func (r Result) Lookup(name string) (any, bool) {
	for _, g := range r {
		if v, ok := g[name]; ok {
			return v, true
		}
	}
	return nil, false
}
