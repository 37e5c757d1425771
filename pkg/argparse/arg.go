// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultGroup is the group used by Parser.Add.
	DefaultGroup = "default"

	helpName = "help"
)

// Arg declares one command-line argument. Create one with Optional or
// Positional; an Arg is immutable except for Group, which the Parser
// assigns when the Arg is registered.
type Arg struct {
	Name     string
	Long     string // "--name", empty for positionals
	Short    string // "-n", empty for positionals or when disabled
	Help     string
	Default  any
	Type     Type
	Choices  []any
	Proc     Transform
	Required bool // informational
	Group    string

	positional bool
	convert    Transform
}

// Option configures an Arg under construction.
type Option func(*argConfig)

type argConfig struct {
	def        any
	typ        Type
	hasType    bool
	choices    []any
	hasChoices bool
	proc       Transform
	required   bool
	short      string
	hasShort   bool
	noShort    bool
	err        error
}

func (c *argConfig) fail(format string, a ...any) {
	if c.err == nil {
		c.err = fmt.Errorf(format, a...)
	}
}

// Default sets the value used when the argument is not given. A bool
// default makes the argument a flag.
func Default(v any) Option {
	return func(c *argConfig) { c.def = v }
}

// Flag makes the argument a flag that is false unless given.
func Flag() Option {
	return Default(false)
}

// WithType sets the value type. Without it the type is inferred from the
// default or the choices.
func WithType(t Type) Option {
	return func(c *argConfig) {
		c.typ = t
		c.hasType = true
	}
}

// Choices restricts the accepted values.
func Choices(vs ...any) Option {
	return func(c *argConfig) {
		c.choices = vs
		c.hasChoices = true
	}
}

// Proc adds a transform that runs after casting and the choice check.
func Proc(t Transform) Option {
	return func(c *argConfig) {
		p, ok := asTransform(t)
		if !ok {
			c.fail("proc must be callable (%T is given)", t)
			return
		}
		c.proc = p
	}
}

// Required marks the argument as required. It is informational: positional
// arguments are always required and optionals never are.
func Required() Option {
	return func(c *argConfig) { c.required = true }
}

// Short overrides the derived short form with a dash and one character,
// e.g. Short("-x").
func Short(s string) Option {
	return func(c *argConfig) {
		c.short = s
		c.hasShort = true
	}
}

// NoShort disables the short form.
func NoShort() Option {
	return func(c *argConfig) { c.noShort = true }
}

// OptionsFromMap converts a keyword table into Options. The recognized
// keys are default, type, choices, proc and required; any other key is
// rejected. type may be a Type or a type name; proc must be a Transform or
// a func(any) (any, error).
func OptionsFromMap(m map[string]any) ([]Option, error) {
	var unknown []string
	for k := range m {
		switch k {
		case "default", "type", "choices", "proc", "required":
		default:
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, &ConfigError{Err: fmt.Errorf("unknown keys %v", unknown)}
	}

	var opts []Option
	if v, ok := m["default"]; ok {
		opts = append(opts, Default(v))
	}
	if v, ok := m["type"]; ok && v != nil {
		switch t := v.(type) {
		case Type:
			opts = append(opts, WithType(t))
		case string:
			typ, err := ParseType(t)
			if err != nil {
				return nil, &ConfigError{Err: fmt.Errorf("type must be one of %v: %w", inferOrder, err)}
			}
			opts = append(opts, WithType(typ))
		default:
			return nil, &ConfigError{Err: fmt.Errorf("type must be one of %v (%T is given)", inferOrder, v)}
		}
	}
	if v, ok := m["choices"]; ok && v != nil {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, &ConfigError{Err: fmt.Errorf("choices must be given as a list (%T is given)", v)}
		}
		choices := make([]any, rv.Len())
		for i := range choices {
			choices[i] = rv.Index(i).Interface()
		}
		opts = append(opts, Choices(choices...))
	}
	if v, ok := m["proc"]; ok && v != nil {
		p, ok := asTransform(v)
		if !ok {
			return nil, &ConfigError{Err: fmt.Errorf("proc must be callable (%T is given)", v)}
		}
		opts = append(opts, Proc(p))
	}
	if v, ok := m["required"]; ok && v != nil {
		b, ok := v.(bool)
		if !ok {
			return nil, &ConfigError{Err: fmt.Errorf("required must be a bool (%T is given)", v)}
		}
		if b {
			opts = append(opts, Required())
		}
	}
	return opts, nil
}

// Optional declares an argument matched by "--long" or "-s". The long form
// is "--" followed by name with underscores replaced by hyphens; the short
// form is the dash and the first character of the name unless changed with
// Short or NoShort.
func Optional(name, help string, opts ...Option) (*Arg, error) {
	return newArg(name, help, false, opts)
}

// Positional declares an argument matched by a plain token.
func Positional(name, help string, opts ...Option) (*Arg, error) {
	return newArg(name, help, true, opts)
}

// MustOptional is like Optional but panics on an invalid declaration.
func MustOptional(name, help string, opts ...Option) *Arg {
	a, err := Optional(name, help, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// MustPositional is like Positional but panics on an invalid declaration.
func MustPositional(name, help string, opts ...Option) *Arg {
	a, err := Positional(name, help, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

func newArg(name, help string, positional bool, opts []Option) (*Arg, error) {
	if name == "" {
		return nil, configErrorf(name, "name must not be empty")
	}
	var c argConfig
	for _, o := range opts {
		o(&c)
	}
	if c.err != nil {
		return nil, &ConfigError{Name: name, Err: c.err}
	}

	a := &Arg{
		Name:       name,
		Help:       help,
		Required:   c.required,
		Proc:       c.proc,
		positional: positional,
	}
	if err := a.setSurface(&c); err != nil {
		return nil, err
	}
	if err := a.setValueSpec(&c); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Arg) setSurface(c *argConfig) error {
	if a.positional {
		if c.hasShort || c.noShort {
			return configErrorf(a.Name, "positional arguments have no short form")
		}
		return nil
	}
	a.Long = "--" + strings.ReplaceAll(a.Name, "_", "-")
	if strings.HasPrefix(a.Long, "---") {
		return configErrorf(a.Name, "name must not start with a separator")
	}
	switch {
	case c.noShort:
	case c.hasShort:
		if !strings.HasPrefix(c.short, "-") || strings.HasPrefix(c.short, "--") || utf8.RuneCountInString(c.short) != 2 {
			return configErrorf(a.Name, "short option %q must be a dash followed by one character", c.short)
		}
		a.Short = c.short
	default:
		_, size := utf8.DecodeRuneInString(a.Long[2:])
		a.Short = a.Long[1 : 2+size]
	}
	return nil
}

func (a *Arg) setValueSpec(c *argConfig) error {
	a.Default = normalize(c.def)

	if _, isFlag := a.Default.(bool); isFlag {
		if c.hasType {
			return configErrorf(a.Name, "a flag cannot have a type")
		}
		if c.hasChoices {
			return configErrorf(a.Name, "a flag cannot have choices")
		}
		if c.proc != nil {
			return configErrorf(a.Name, "a flag cannot have a proc")
		}
		if a.positional {
			return configErrorf(a.Name, "a positional argument cannot be a flag")
		}
		return nil
	}

	if c.hasChoices {
		if len(c.choices) == 0 {
			return configErrorf(a.Name, "empty choices are given")
		}
		a.Choices = make([]any, len(c.choices))
		for i, v := range c.choices {
			a.Choices[i] = normalize(v)
		}
	}

	switch {
	case c.hasType:
		if !c.typ.valid() {
			return configErrorf(a.Name, "type must be one of %v (%v is given)", inferOrder, c.typ)
		}
		a.Type = c.typ
	case a.Default != nil:
		a.Type = inferType(a.Default)
		if a.Type == Untyped {
			return configErrorf(a.Name, "default %v has unsupported type %T", a.Default, a.Default)
		}
	case a.Choices != nil:
		a.Type = inferChoicesType(a.Choices)
	}

	if a.Default != nil && a.Type != Untyped {
		v, ok := a.Type.coerce(a.Default)
		if !ok {
			return configErrorf(a.Name, "default %v is not a %v", a.Default, a.Type)
		}
		a.Default = v
	}
	for i, v := range a.Choices {
		if v == nil {
			continue
		}
		want := a.Type
		if want == Untyped {
			want = Text
		}
		cv, ok := want.coerce(v)
		if !ok {
			return configErrorf(a.Name, "choice %v is not a %v", v, want)
		}
		a.Choices[i] = cv
	}

	steps := chain{castTransform(a.Type)}
	if a.Choices != nil {
		steps = append(steps, choiceTransform{typ: a.Type, choices: a.Choices})
	}
	if a.Proc != nil {
		steps = append(steps, a.Proc)
	}
	a.convert = steps
	return nil
}

func inferType(v any) Type {
	for _, t := range inferOrder {
		if t.matches(v) {
			return t
		}
	}
	return Untyped
}

func inferChoicesType(choices []any) Type {
	for _, t := range inferOrder {
		all := true
		for _, c := range choices {
			if c != nil && !t.matches(c) {
				all = false
				break
			}
		}
		if all {
			return t
		}
	}
	return Untyped
}

// IsFlag reports whether the argument is a boolean flag.
func (a *Arg) IsFlag() bool {
	_, ok := a.Default.(bool)
	return ok
}

// IsPositional reports whether the argument is matched by plain tokens.
func (a *Arg) IsPositional() bool {
	return a.positional
}

// identity names the argument in error messages.
func (a *Arg) identity() string {
	if a.Long != "" {
		return a.Long
	}
	return a.Name
}

// Convert runs the argument's cast, choice check and proc on raw.
func (a *Arg) Convert(raw string) (any, error) {
	if a.IsFlag() {
		return nil, fmt.Errorf("flag %s takes no value", a.identity())
	}
	return a.convert.Apply(raw)
}

// parse extracts the argument's value. Flags negate their default without
// consuming a token; other arguments take the front token of q.
func (a *Arg) parse(q *tokenQueue) (any, error) {
	if a.IsFlag() {
		return !a.Default.(bool), nil
	}
	raw, ok := q.pop()
	if !ok {
		return nil, ErrMissingValue
	}
	return a.convert.Apply(raw)
}

// UsageRow returns the five help columns for the argument: long form, short
// form, metavariable, type tag and help text.
func (a *Arg) UsageRow() [5]string {
	var typ, metavar string
	switch {
	case a.IsFlag():
		typ = "[Flag]"
	case a.Type != Untyped:
		typ = "[" + a.Type.String() + "]"
	}
	if !a.IsFlag() {
		metavar = strings.ToUpper(a.Name)
	}

	var help []string
	if a.Help != "" {
		help = append(help, a.Help)
	}
	if a.Default != nil && a.Default != false {
		help = append(help, "default="+a.Type.format(a.Default))
	}
	if a.Choices != nil {
		help = append(help, "choice:"+formatChoices(a.Type, a.Choices))
	}
	return [5]string{a.Long, a.Short, metavar, typ, strings.Join(help, ", ")}
}

func (a *Arg) String() string {
	return fmt.Sprintf("Arg(%s)", a.identity())
}
