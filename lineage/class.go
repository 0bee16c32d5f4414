package lineage

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// Class is one node of the single-inheritance tree. It owns a static
// namespace and an instance namespace; neither map ever holds inherited
// entries, inheritance is resolved at read time by the lookup closures.
type Class struct {
	name    string
	super   *Class
	static  map[string]Value
	methods map[string]Value

	mixins     map[*Mixin]struct{}
	mixinOrder []*Mixin
	subclasses subclassRegistry

	lookupMethod lookupFunc
	lookupStatic lookupFunc
}

// createRootClass builds a class with no superclass. The package creates
// exactly one of these, Object.
func createRootClass(name string) (*Class, error) {
	return newClass(name, nil)
}

func newClass(name string, super *Class) (*Class, error) {
	if err := validateClassName(name); err != nil {
		return nil, err
	}
	c := &Class{
		name:    name,
		super:   super,
		static:  make(map[string]Value),
		methods: make(map[string]Value),
		mixins:  make(map[*Mixin]struct{}),
	}
	wireLookups(c)
	if super != nil {
		slog.Debug("class created", "class", name, "super", super.name)
	} else {
		slog.Debug("root class created", "class", name)
	}
	return c, nil
}

func validateClassName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalidArgument("class name must be a non-empty string")
	}
	return nil
}

func validateMemberName(owner, name string) error {
	if name == "" {
		return invalidArgument("%s: member name must be a non-empty string", owner)
	}
	return nil
}

func (c *Class) Name() string { return c.name }

// Super returns the superclass, or nil for the root.
func (c *Class) Super() *Class { return c.super }

func (c *Class) String() string { return "class " + c.name }

// Define stores val in the class's own instance namespace, shadowing any
// inherited member of the same name for this class and its subclasses.
func (c *Class) Define(name string, val Value) error {
	if c == nil {
		return invalidArgument("define %s: receiver is not a class", name)
	}
	if err := validateMemberName(c.name, name); err != nil {
		return err
	}
	c.methods[name] = val
	return nil
}

func (c *Class) DefineMethod(name string, fn Func) error {
	if c == nil {
		return invalidArgument("define %s: receiver is not a class", name)
	}
	return c.Define(name, NewFunction(c.name+"#"+name, fn))
}

// DefineStatic stores val in the class's own static namespace.
func (c *Class) DefineStatic(name string, val Value) error {
	if c == nil {
		return invalidArgument("define static %s: receiver is not a class", name)
	}
	if err := validateMemberName(c.name, name); err != nil {
		return err
	}
	c.static[name] = val
	return nil
}

func (c *Class) DefineStaticMethod(name string, fn Func) error {
	if c == nil {
		return invalidArgument("define static %s: receiver is not a class", name)
	}
	return c.DefineStatic(name, NewFunction(c.name+"."+name, fn))
}

// OwnMethod reads the class's own instance namespace without any fallback.
func (c *Class) OwnMethod(name string) (Value, bool) {
	if c == nil {
		return NewNil(), false
	}
	val, ok := c.methods[name]
	return val, ok
}

// OwnStatic reads the class's own static namespace without any fallback.
func (c *Class) OwnStatic(name string) (Value, bool) {
	if c == nil {
		return NewNil(), false
	}
	val, ok := c.static[name]
	return val, ok
}

// MethodNames lists the own instance namespace, sorted.
func (c *Class) MethodNames() []string {
	return slices.Sorted(maps.Keys(c.methods))
}

// StaticNames lists the own static namespace, sorted.
func (c *Class) StaticNames() []string {
	return slices.Sorted(maps.Keys(c.static))
}

// Send resolves name through the static lookup and calls it with the class
// as self.
func (c *Class) Send(name string, args ...Value) (Value, error) {
	if c == nil {
		return NewNil(), invalidArgument("send %s: receiver is not a class", name)
	}
	member, ok := c.Get(name)
	if !ok {
		return NewNil(), fmt.Errorf("%w: %s.%s", ErrUndefinedMember, c.name, name)
	}
	return callMember(member, NewClass(c), c.name+"."+name, args)
}

func callMember(member Value, self Value, label string, args []Value) (Value, error) {
	fn := member.Function()
	if fn == nil {
		return NewNil(), fmt.Errorf("%w: %s is %s", ErrNotCallable, label, member.Kind())
	}
	return fn.Fn(self, args)
}
