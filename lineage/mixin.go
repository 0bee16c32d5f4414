package lineage

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// Reserved mixin keys. They are never copied into a class's instance
// namespace.
const (
	MixinStaticKey   = "static"
	MixinIncludedKey = "included"
)

// Mixin is a mapping of members that can be copied into classes. It has no
// place in the inheritance chain; its pointer is its identity for Includes.
type Mixin struct {
	name     string
	members  map[string]Value
	static   map[string]Value
	included *Function
}

// NewMixin builds a mixin from members. A "static" entry must be a hash and
// is copied into the static namespace of including classes; an "included"
// entry must be a function and is called after the copy.
func NewMixin(name string, members map[string]Value) (*Mixin, error) {
	m := &Mixin{
		name:    name,
		members: make(map[string]Value),
		static:  make(map[string]Value),
	}
	for key, val := range members {
		if err := m.Define(key, val); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Mixin) Name() string { return m.name }

func (m *Mixin) String() string {
	if m.name == "" {
		return "mixin"
	}
	return "mixin " + m.name
}

// Define adds or replaces a member. Changes affect only classes that include
// the mixin afterwards.
func (m *Mixin) Define(key string, val Value) error {
	if key == "" {
		return invalidArgument("%s: member name must be a non-empty string", m)
	}
	switch key {
	case MixinStaticKey:
		if val.Kind() != KindHash {
			return invalidArgument("%s: static must be a hash, got %s", m, val.Kind())
		}
		maps.Copy(m.static, val.Hash())
	case MixinIncludedKey:
		fn := val.Function()
		if fn == nil {
			return invalidArgument("%s: included must be a function, got %s", m, val.Kind())
		}
		m.included = fn
	default:
		m.members[key] = val
	}
	return nil
}

// DefineStatic adds a member copied into the static namespace of including
// classes.
func (m *Mixin) DefineStatic(key string, val Value) error {
	if key == "" {
		return invalidArgument("%s: static member name must be a non-empty string", m)
	}
	m.static[key] = val
	return nil
}

func (m *Mixin) Members() map[string]Value { return maps.Clone(m.members) }

func (m *Mixin) Static() map[string]Value { return maps.Clone(m.static) }

// Include copies each mixin into c in order, overwriting same-named own
// members, runs the mixin's included hook, and records membership. All
// arguments are checked before anything is copied.
func (c *Class) Include(mixins ...*Mixin) (*Class, error) {
	if c == nil {
		return nil, invalidArgument("include: receiver is not a class")
	}
	for i, m := range mixins {
		if m == nil {
			return c, invalidArgument("include into %s: mixin #%d is nil", c.name, i+1)
		}
	}
	for _, m := range mixins {
		if err := c.includeMixin(m); err != nil {
			return c, err
		}
	}
	return c, nil
}

func (c *Class) includeMixin(m *Mixin) error {
	maps.Copy(c.methods, m.members)
	maps.Copy(c.static, m.static)
	if m.included != nil {
		if _, err := m.included.Fn(NewMixinValue(m), []Value{NewClass(c)}); err != nil {
			return fmt.Errorf("%s included hook for %s: %w", m, c.name, err)
		}
	}
	if _, ok := c.mixins[m]; !ok {
		c.mixins[m] = struct{}{}
		c.mixinOrder = append(c.mixinOrder, m)
	}
	slog.Debug("mixin included", "class", c.name, "mixin", m.name, "members", len(m.members), "static", len(m.static))
	return nil
}

// Mixins returns the mixins included directly on c, in inclusion order.
func (c *Class) Mixins() []*Mixin {
	if c == nil {
		return nil
	}
	return slices.Clone(c.mixinOrder)
}

func mixinArgs(args []Value) ([]*Mixin, error) {
	mixins := make([]*Mixin, len(args))
	for i, arg := range args {
		m := arg.Mixin()
		if m == nil {
			return nil, invalidArgument("mixin #%d must be a mixin mapping, got %s", i+1, arg.Kind())
		}
		mixins[i] = m
	}
	return mixins, nil
}
