package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/mgomes/lineage/lineage"
)

var shellCommands = []string{
	"class", "fields", "def", "static", "mixin", "include", "new",
	"send", "set", "get", "isa", "subclass?", "includes?", "tree",
}

// shell executes one-line commands against a hierarchy and a set of named
// instances.
type shell struct {
	hierarchy *lineage.Hierarchy
	vars      map[string]*lineage.Instance
}

type word struct {
	text   string
	quoted bool
}

func newShell(h *lineage.Hierarchy) *shell {
	return &shell{hierarchy: h, vars: make(map[string]*lineage.Instance)}
}

func (s *shell) exec(line string) (string, error) {
	words, err := splitWords(line)
	if err != nil {
		return "", err
	}
	if len(words) == 0 {
		return "", nil
	}
	cmd, rest := words[0].text, words[1:]
	switch cmd {
	case "class":
		return s.defineClass(rest)
	case "fields":
		return s.defineFields(rest)
	case "def":
		return s.defineMethod(rest)
	case "static":
		return s.defineStatic(rest)
	case "mixin":
		return s.defineMixin(rest)
	case "include":
		return s.include(rest)
	case "new":
		return s.construct(rest)
	case "send":
		return s.send(rest)
	case "set":
		return s.set(rest)
	case "get":
		return s.get(rest)
	case "isa":
		return s.isa(rest)
	case "subclass?":
		return s.subclassOf(rest)
	case "includes?":
		return s.includes(rest)
	case "tree":
		var b strings.Builder
		if err := s.hierarchy.WriteTree(&b); err != nil {
			return "", err
		}
		return strings.TrimRight(b.String(), "\n"), nil
	default:
		return "", fmt.Errorf("unknown command %q", cmd)
	}
}

// class Name [< Super]
func (s *shell) defineClass(args []word) (string, error) {
	switch {
	case len(args) == 1:
		cls, err := s.hierarchy.DefineClass(args[0].text, "")
		if err != nil {
			return "", err
		}
		return cls.String(), nil
	case len(args) == 3 && args[1].text == "<":
		cls, err := s.hierarchy.DefineClass(args[0].text, args[2].text)
		if err != nil {
			return "", err
		}
		return cls.String(), nil
	default:
		return "", errors.New("usage: class <Name> [< <Super>]")
	}
}

// fields Class name...
func (s *shell) defineFields(args []word) (string, error) {
	if len(args) < 2 {
		return "", errors.New("usage: fields <Class> <field>...")
	}
	cls, err := s.class(args[0].text)
	if err != nil {
		return "", err
	}
	fields := texts(args[1:])
	if err := cls.DefineFields(fields...); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s#initialize(%s)", cls.Name(), strings.Join(fields, ", ")), nil
}

// def Class method "template"
func (s *shell) defineMethod(args []word) (string, error) {
	if len(args) != 3 {
		return "", errors.New("usage: def <Class> <method> \"<template>\"")
	}
	cls, err := s.class(args[0].text)
	if err != nil {
		return "", err
	}
	name := args[1].text
	if err := cls.Define(name, lineage.NewTemplateMethod(cls.Name()+"#"+name, args[2].text)); err != nil {
		return "", err
	}
	return cls.Name() + "#" + name, nil
}

// static Class name literal
func (s *shell) defineStatic(args []word) (string, error) {
	if len(args) != 3 {
		return "", errors.New("usage: static <Class> <name> <value>")
	}
	cls, err := s.class(args[0].text)
	if err != nil {
		return "", err
	}
	val := s.literal(args[2])
	if err := cls.DefineStatic(args[1].text, val); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.%s = %s", cls.Name(), args[1].text, val), nil
}

// mixin Name [member "template"]
func (s *shell) defineMixin(args []word) (string, error) {
	if len(args) != 1 && len(args) != 3 {
		return "", errors.New("usage: mixin <Name> [<member> \"<template>\"]")
	}
	name := args[0].text
	m, ok := s.hierarchy.Mixin(name)
	if !ok {
		var err error
		if m, err = s.hierarchy.DefineMixin(name); err != nil {
			return "", err
		}
	}
	if len(args) == 3 {
		member := args[1].text
		if err := m.Define(member, lineage.NewTemplateMethod(name+"#"+member, args[2].text)); err != nil {
			return "", err
		}
	}
	return m.String(), nil
}

// include Class Mixin...
func (s *shell) include(args []word) (string, error) {
	if len(args) < 2 {
		return "", errors.New("usage: include <Class> <Mixin>...")
	}
	mixins := texts(args[1:])
	if err := s.hierarchy.Include(args[0].text, mixins...); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s includes %s", args[0].text, strings.Join(mixins, ", ")), nil
}

// new var Class args...
func (s *shell) construct(args []word) (string, error) {
	if len(args) < 2 {
		return "", errors.New("usage: new <var> <Class> [args...]")
	}
	cls, err := s.class(args[1].text)
	if err != nil {
		return "", err
	}
	inst, err := cls.New(s.literals(args[2:])...)
	if err != nil {
		return "", err
	}
	s.vars[args[0].text] = inst
	return inst.String(), nil
}

// send var method args...
func (s *shell) send(args []word) (string, error) {
	if len(args) < 2 {
		return "", errors.New("usage: send <var> <method> [args...]")
	}
	inst, err := s.instance(args[0].text)
	if err != nil {
		return "", err
	}
	result, err := inst.Send(args[1].text, s.literals(args[2:])...)
	if err != nil {
		return "", err
	}
	return result.String(), nil
}

// set var field literal
func (s *shell) set(args []word) (string, error) {
	if len(args) != 3 {
		return "", errors.New("usage: set <var> <field> <value>")
	}
	inst, err := s.instance(args[0].text)
	if err != nil {
		return "", err
	}
	val := s.literal(args[2])
	inst.Set(args[1].text, val)
	return val.String(), nil
}

// get var member
func (s *shell) get(args []word) (string, error) {
	if len(args) != 2 {
		return "", errors.New("usage: get <var> <member>")
	}
	inst, err := s.instance(args[0].text)
	if err != nil {
		return "", err
	}
	val, ok := inst.Get(args[1].text)
	if !ok {
		return "", fmt.Errorf("%w: %s#%s", lineage.ErrUndefinedMember, inst.Class().Name(), args[1].text)
	}
	return val.String(), nil
}

// isa var Class
func (s *shell) isa(args []word) (string, error) {
	if len(args) != 2 {
		return "", errors.New("usage: isa <var> <Class>")
	}
	inst, err := s.instance(args[0].text)
	if err != nil {
		return "", err
	}
	cls, _ := s.hierarchy.Class(args[1].text)
	return strconv.FormatBool(inst.IsInstanceOf(cls)), nil
}

// subclass? Class Other
func (s *shell) subclassOf(args []word) (string, error) {
	if len(args) != 2 {
		return "", errors.New("usage: subclass? <Class> <Other>")
	}
	cls, _ := s.hierarchy.Class(args[0].text)
	other, _ := s.hierarchy.Class(args[1].text)
	return strconv.FormatBool(cls.IsSubclassOf(other)), nil
}

// includes? Class Mixin
func (s *shell) includes(args []word) (string, error) {
	if len(args) != 2 {
		return "", errors.New("usage: includes? <Class> <Mixin>")
	}
	cls, _ := s.hierarchy.Class(args[0].text)
	m, _ := s.hierarchy.Mixin(args[1].text)
	return strconv.FormatBool(cls.Includes(m)), nil
}

func (s *shell) class(name string) (*lineage.Class, error) {
	cls, ok := s.hierarchy.Class(name)
	if !ok {
		return nil, fmt.Errorf("unknown class %s", name)
	}
	return cls, nil
}

func (s *shell) instance(name string) (*lineage.Instance, error) {
	inst, ok := s.vars[name]
	if !ok {
		return nil, fmt.Errorf("unknown variable %s", name)
	}
	return inst, nil
}

func (s *shell) varNames() []string {
	return slices.Sorted(maps.Keys(s.vars))
}

// names lists everything the shell can complete: commands, classes, mixins
// and variables.
func (s *shell) names() []string {
	names := slices.Clone(shellCommands)
	for _, cls := range s.hierarchy.Classes() {
		names = append(names, cls.Name())
	}
	for _, m := range s.hierarchy.Mixins() {
		names = append(names, m.Name())
	}
	return append(names, s.varNames()...)
}

// literal resolves a bare word to a variable or class before falling back to
// parseLiteral.
func (s *shell) literal(w word) lineage.Value {
	if !w.quoted {
		if inst, ok := s.vars[w.text]; ok {
			return lineage.NewInstance(inst)
		}
		if cls, ok := s.hierarchy.Class(w.text); ok {
			return lineage.NewClass(cls)
		}
		if m, ok := s.hierarchy.Mixin(w.text); ok {
			return lineage.NewMixinValue(m)
		}
	}
	return parseLiteral(w)
}

func (s *shell) literals(words []word) []lineage.Value {
	vals := make([]lineage.Value, len(words))
	for i, w := range words {
		vals[i] = s.literal(w)
	}
	return vals
}

func parseLiteral(w word) lineage.Value {
	if w.quoted {
		return lineage.NewString(w.text)
	}
	switch w.text {
	case "nil":
		return lineage.NewNil()
	case "true":
		return lineage.NewBool(true)
	case "false":
		return lineage.NewBool(false)
	}
	if i, err := strconv.ParseInt(w.text, 10, 64); err == nil {
		return lineage.NewInt(i)
	}
	if f, err := strconv.ParseFloat(w.text, 64); err == nil {
		return lineage.NewFloat(f)
	}
	return lineage.NewString(w.text)
}

func texts(words []word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.text
	}
	return out
}

// splitWords splits on spaces and tabs. Double-quoted words use Go string
// syntax.
func splitWords(line string) ([]word, error) {
	var words []word
	i := 0
	for i < len(line) {
		switch line[i] {
		case ' ', '\t':
			i++
		case '"':
			j := i + 1
			for j < len(line) && line[j] != '"' {
				if line[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(line) {
				return nil, errors.New("unterminated string")
			}
			text, err := strconv.Unquote(line[i : j+1])
			if err != nil {
				return nil, fmt.Errorf("invalid string %s: %w", line[i:j+1], err)
			}
			words = append(words, word{text: text, quoted: true})
			i = j + 1
		default:
			j := i
			for j < len(line) && line[j] != ' ' && line[j] != '\t' {
				j++
			}
			words = append(words, word{text: line[i:j]})
			i = j
		}
	}
	return words, nil
}
