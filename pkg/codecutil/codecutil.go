// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codecutil reads and writes the structured formats argspec
// understands: JSON, YAML and TOML.
package codecutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a structured encoding.
type Format int

const (
	Unknown Format = iota
	JSON
	YAML
	TOML
)

// ErrUnknownFormat is returned for format names and values that are not
// JSON, YAML or TOML.
var ErrUnknownFormat = errors.New("unknown format")

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return "unknown"
	}
}

// ParseFormat maps a format name, case-insensitively, to a Format. "yml"
// is accepted as YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	}
	return Unknown, fmt.Errorf("%w %q (want json, yaml or toml)", ErrUnknownFormat, name)
}

// Encode writes v to w in format f.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
	case TOML:
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("failed to encode toml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	return nil
}

// Decode reads one document in format f from r into v. With strict set,
// keys that do not map to a field of v are an error. JSON numbers are
// decoded as json.Number.
func Decode(r io.Reader, f Format, v any, strict bool) error {
	switch f {
	case JSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to decode json: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(strict)
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("failed to decode yaml: empty document")
			}
			return fmt.Errorf("failed to decode yaml: %w", err)
		}
	case TOML:
		md, err := toml.NewDecoder(r).Decode(v)
		if err != nil {
			return fmt.Errorf("failed to decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); strict && len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return fmt.Errorf("failed to decode toml: unknown keys %s", strings.Join(keys, ", "))
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	return nil
}
