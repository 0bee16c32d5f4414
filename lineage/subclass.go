package lineage

import (
	"fmt"
	"log/slog"
)

// Subclass creates a direct subclass of c. The new class gets a forwarding
// trampoline for every operator in c's metamethod list and an initialize that
// forwards its arguments to c's initialize. c is then notified through its
// subclassed member.
func (c *Class) Subclass(name string) (*Class, error) {
	if c == nil {
		return nil, invalidArgument("subclass %q: receiver is not a class", name)
	}
	child, err := newClass(name, c)
	if err != nil {
		return nil, err
	}
	installMetamethods(child, c.metamethodNames())
	installDefaultInitializer(child)
	c.subclasses.add(child)
	slog.Debug("subclass registered", "class", child.name, "super", c.name)

	if _, err := c.Send("subclassed", NewClass(child)); err != nil {
		return nil, fmt.Errorf("%s.subclassed(%s): %w", c.name, child.name, err)
	}
	return child, nil
}

func installDefaultInitializer(c *Class) {
	super := c.super
	label := super.name + "#initialize"
	c.methods["initialize"] = NewFunction(c.name+"#initialize", func(self Value, args []Value) (Value, error) {
		init, ok := super.lookupStatic("initialize")
		if !ok {
			return NewNil(), fmt.Errorf("%w: %s", ErrUndefinedMember, label)
		}
		return callMember(init, self, label, args)
	})
}

// DefineClass is the convenience entry point for new classes. A nil super
// means Object. The parent's subclass member is used, so classes that
// override it are honoured.
func DefineClass(name string, super *Class) (*Class, error) {
	if super == nil {
		super = Object
	}
	val, err := super.Send("subclass", NewString(name))
	if err != nil {
		return nil, err
	}
	cls := val.Class()
	if cls == nil {
		return nil, invalidArgument("%s.subclass returned %s, not a class", super.name, val.Kind())
	}
	return cls, nil
}
