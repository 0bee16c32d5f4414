package lineage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Hierarchy is a registry of named classes and mixins. Classes stay alive as
// long as the hierarchy does, which the weak subclass registry alone does
// not guarantee.
type Hierarchy struct {
	classes    map[string]*Class
	classOrder []*Class
	mixins     map[string]*Mixin
	mixinOrder []*Mixin
}

// Blueprint is the YAML form of a hierarchy. Classes are created in order, so
// a superclass must appear before its subclasses.
type Blueprint struct {
	Mixins  []MixinBlueprint `yaml:"mixins"`
	Classes []ClassBlueprint `yaml:"classes"`
}

type MixinBlueprint struct {
	Name    string            `yaml:"name"`
	Methods map[string]string `yaml:"methods"`
	Static  map[string]any    `yaml:"static"`
}

type ClassBlueprint struct {
	Name    string            `yaml:"name"`
	Super   string            `yaml:"super"`
	Fields  []string          `yaml:"fields"`
	Methods map[string]string `yaml:"methods"`
	Static  map[string]any    `yaml:"static"`
	Include []string          `yaml:"include"`
}

// NewHierarchy returns a hierarchy that already knows Object.
func NewHierarchy() *Hierarchy {
	h := &Hierarchy{
		classes: make(map[string]*Class),
		mixins:  make(map[string]*Mixin),
	}
	h.classes[Object.name] = Object
	h.classOrder = append(h.classOrder, Object)
	return h
}

// LoadHierarchy decodes a YAML blueprint and builds it. Unknown keys are
// rejected.
func LoadHierarchy(data []byte) (*Hierarchy, error) {
	var bp Blueprint
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bp); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse blueprint: %w", err)
	}
	h := NewHierarchy()
	if err := h.Build(bp); err != nil {
		return nil, err
	}
	return h, nil
}

// Build creates every mixin and then every class of bp.
func (h *Hierarchy) Build(bp Blueprint) error {
	for _, mb := range bp.Mixins {
		if err := h.buildMixin(mb); err != nil {
			return err
		}
	}
	for _, cb := range bp.Classes {
		if err := h.buildClass(cb); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hierarchy) buildMixin(mb MixinBlueprint) error {
	m, err := h.DefineMixin(mb.Name)
	if err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(mb.Methods)) {
		if err := m.Define(name, NewTemplateMethod(mb.Name+"#"+name, mb.Methods[name])); err != nil {
			return err
		}
	}
	static, err := yamlValues(mb.Static)
	if err != nil {
		return fmt.Errorf("mixin %s: %w", mb.Name, err)
	}
	for name, val := range static {
		if err := m.DefineStatic(name, val); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hierarchy) buildClass(cb ClassBlueprint) error {
	cls, err := h.DefineClass(cb.Name, cb.Super)
	if err != nil {
		return err
	}
	if len(cb.Fields) > 0 {
		if err := cls.DefineFields(cb.Fields...); err != nil {
			return err
		}
	}
	for name, tmpl := range cb.Methods {
		if err := cls.Define(name, NewTemplateMethod(cb.Name+"#"+name, tmpl)); err != nil {
			return err
		}
	}
	static, err := yamlValues(cb.Static)
	if err != nil {
		return fmt.Errorf("class %s: %w", cb.Name, err)
	}
	for name, val := range static {
		if err := cls.DefineStatic(name, val); err != nil {
			return err
		}
	}
	if len(cb.Include) > 0 {
		return h.Include(cb.Name, cb.Include...)
	}
	return nil
}

// DefineClass creates a class under superName (Object when empty) and
// registers it.
func (h *Hierarchy) DefineClass(name, superName string) (*Class, error) {
	if _, exists := h.classes[name]; exists {
		return nil, invalidArgument("class %s is already defined", name)
	}
	super := Object
	if superName != "" {
		var ok bool
		super, ok = h.classes[superName]
		if !ok {
			return nil, invalidArgument("unknown superclass %s for %s", superName, name)
		}
	}
	cls, err := DefineClass(name, super)
	if err != nil {
		return nil, err
	}
	h.classes[name] = cls
	h.classOrder = append(h.classOrder, cls)
	return cls, nil
}

// DefineMixin creates and registers an empty mixin.
func (h *Hierarchy) DefineMixin(name string) (*Mixin, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidArgument("mixin name must be a non-empty string")
	}
	if _, exists := h.mixins[name]; exists {
		return nil, invalidArgument("mixin %s is already defined", name)
	}
	m, err := NewMixin(name, nil)
	if err != nil {
		return nil, err
	}
	h.mixins[name] = m
	h.mixinOrder = append(h.mixinOrder, m)
	return m, nil
}

// Include includes the named mixins into the named class.
func (h *Hierarchy) Include(className string, mixinNames ...string) error {
	cls, ok := h.classes[className]
	if !ok {
		return invalidArgument("unknown class %s", className)
	}
	mixins := make([]*Mixin, len(mixinNames))
	for i, name := range mixinNames {
		m, ok := h.mixins[name]
		if !ok {
			return invalidArgument("unknown mixin %s for %s", name, className)
		}
		mixins[i] = m
	}
	_, err := cls.Include(mixins...)
	return err
}

func (h *Hierarchy) Class(name string) (*Class, bool) {
	cls, ok := h.classes[name]
	return cls, ok
}

func (h *Hierarchy) Mixin(name string) (*Mixin, bool) {
	m, ok := h.mixins[name]
	return m, ok
}

// Classes returns the registered classes in definition order, Object first.
func (h *Hierarchy) Classes() []*Class { return slices.Clone(h.classOrder) }

func (h *Hierarchy) Mixins() []*Mixin { return slices.Clone(h.mixinOrder) }

// WriteTree renders the registered classes as an indented tree rooted at
// Object. Own mixins are listed in brackets after the class name.
func (h *Hierarchy) WriteTree(w io.Writer) error {
	var b strings.Builder
	b.WriteString(treeLabel(Object))
	b.WriteString("\n")
	h.writeChildren(&b, Object, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func (h *Hierarchy) writeChildren(b *strings.Builder, c *Class, prefix string) {
	children := h.children(c)
	for i, child := range children {
		branch, indent := "├── ", "│   "
		if i == len(children)-1 {
			branch, indent = "└── ", "    "
		}
		b.WriteString(prefix + branch + treeLabel(child) + "\n")
		h.writeChildren(b, child, prefix+indent)
	}
}

func (h *Hierarchy) children(c *Class) []*Class {
	var out []*Class
	for _, child := range c.Subclasses() {
		if h.classes[child.name] == child {
			out = append(out, child)
		}
	}
	return out
}

func treeLabel(c *Class) string {
	mixins := c.Mixins()
	if len(mixins) == 0 {
		return c.name
	}
	names := make([]string, len(mixins))
	for i, m := range mixins {
		names[i] = m.name
	}
	return fmt.Sprintf("%s [%s]", c.name, strings.Join(names, ", "))
}

func yamlValues(raw map[string]any) (map[string]Value, error) {
	out := make(map[string]Value, len(raw))
	for name, item := range raw {
		val, err := yamlValue(item)
		if err != nil {
			return nil, fmt.Errorf("static %s: %w", name, err)
		}
		out[name] = val
	}
	return out, nil
}

func yamlValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return NewNil(), nil
	case bool:
		return NewBool(v), nil
	case int:
		return NewInt(int64(v)), nil
	case int64:
		return NewInt(v), nil
	case uint64:
		return NewInt(int64(v)), nil
	case float64:
		return NewFloat(v), nil
	case string:
		return NewString(v), nil
	case []any:
		elems := make([]Value, len(v))
		for i, item := range v {
			val, err := yamlValue(item)
			if err != nil {
				return NewNil(), err
			}
			elems[i] = val
		}
		return NewArray(elems), nil
	case map[string]any:
		entries, err := yamlValues(v)
		if err != nil {
			return NewNil(), err
		}
		return NewHash(entries), nil
	default:
		return NewNil(), invalidArgument("unsupported YAML value %T", raw)
	}
}
