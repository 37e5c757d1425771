// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unique"
)

// Type is the value type of a non-flag argument.
type Type int

const (
	// Untyped arguments keep the raw token text.
	Untyped Type = iota
	Integer
	Float
	Text
	SymbolType
)

// inferOrder is the order in which types are tried when no type is given.
var inferOrder = []Type{Integer, Float, Text, SymbolType}

func (t Type) String() string {
	switch t {
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Text:
		return "Text"
	case SymbolType:
		return "Symbol"
	case Untyped:
		return "Untyped"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func (t Type) valid() bool {
	return t >= Integer && t <= SymbolType
}

// ParseType returns the Type with the given name. Names are case
// insensitive and accept the common aliases int, str and string.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "integer", "int":
		return Integer, nil
	case "float":
		return Float, nil
	case "text", "string", "str":
		return Text, nil
	case "symbol":
		return SymbolType, nil
	}
	return Untyped, fmt.Errorf("unknown type %q", name)
}

// Symbol is an interned string. Two symbols with the same text compare
// equal with ==.
type Symbol struct {
	h unique.Handle[string]
}

// Intern returns the Symbol for s.
func Intern(s string) Symbol {
	return Symbol{h: unique.Make(s)}
}

func (s Symbol) String() string {
	if s == (Symbol{}) {
		return ""
	}
	return s.h.Value()
}

// MarshalText encodes the symbol as its text so that json, yaml and toml
// encoders print it as a plain string.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Symbol) UnmarshalText(b []byte) error {
	*s = Intern(string(b))
	return nil
}

// CastError is returned when a token cannot be converted to the declared
// type.
type CastError struct {
	Type  Type
	Value string
	Err   error
}

func (e *CastError) Error() string {
	return fmt.Sprintf("invalid value for %s: %q", e.Type, e.Value)
}

func (e *CastError) Unwrap() error {
	return e.Err
}

// cast converts raw token text to t.
func (t Type) cast(raw string) (any, error) {
	switch t {
	case Integer:
		n, err := strconv.ParseInt(raw, 0, strconv.IntSize)
		if err != nil {
			return nil, &CastError{Type: t, Value: raw, Err: err}
		}
		return int(n), nil
	case Float:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &CastError{Type: t, Value: raw, Err: err}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &CastError{Type: t, Value: raw, Err: strconv.ErrSyntax}
		}
		return f, nil
	case SymbolType:
		return Intern(raw), nil
	default:
		return raw, nil
	}
}

// format renders v the way it appears in help text.
func (t Type) format(v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case Symbol:
		return ":" + v.String()
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

// matches reports whether v is an instance of t.
func (t Type) matches(v any) bool {
	switch v.(type) {
	case int:
		return t == Integer
	case float64:
		return t == Float
	case string:
		return t == Text
	case Symbol:
		return t == SymbolType
	}
	return false
}

// normalize maps Go values decoded from config files or supplied by
// callers onto the representation used for each Type. Any integer kind
// that fits becomes int, float32 becomes float64 and json.Number becomes whichever
// of the two it holds.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	switch v := v.(type) {
	case int, float64, string, Symbol, bool:
		return v
	case float32:
		return float64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rv.Uint() > math.MaxInt {
			return v
		}
		return int(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	}
	return v
}

// coerce converts a normalized value into t when the conversion is
// lossless: integers widen to Float and text becomes a Symbol.
func (t Type) coerce(v any) (any, bool) {
	if t.matches(v) {
		return v, true
	}
	switch t {
	case Float:
		if n, ok := v.(int); ok {
			return float64(n), true
		}
	case Integer:
		if f, ok := v.(float64); ok && f == math.Trunc(f) && f >= math.MinInt && f < -math.MinInt {
			return int(f), true
		}
	case SymbolType:
		if s, ok := v.(string); ok {
			return Intern(s), true
		}
	}
	return nil, false
}
