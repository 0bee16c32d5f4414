package lineage

import (
	"fmt"
	"slices"
)

// Operator hook names. A class binds an operator by defining a member with
// one of these names.
const (
	OpAdd      = "__add"
	OpCall     = "__call"
	OpConcat   = "__concat"
	OpDiv      = "__div"
	OpEq       = "__eq"
	OpLe       = "__le"
	OpLen      = "__len"
	OpLt       = "__lt"
	OpMod      = "__mod"
	OpMul      = "__mul"
	OpPow      = "__pow"
	OpSub      = "__sub"
	OpToString = "__tostring"
	OpUnm      = "__unm"
)

// metamethodsKey names the static member holding the operator list that
// subclasses receive trampolines for.
const metamethodsKey = "__metamethods"

var defaultMetamethods = []string{
	OpAdd, OpCall, OpConcat, OpDiv, OpEq, OpLe, OpLen,
	OpLt, OpMod, OpMul, OpPow, OpSub, OpToString, OpUnm,
}

// MetamethodNames returns the operator names every class receives
// trampolines for unless a class overrides its __metamethods static.
func MetamethodNames() []string {
	return slices.Clone(defaultMetamethods)
}

func (c *Class) metamethodNames() []string {
	val, ok := c.lookupStatic(metamethodsKey)
	if !ok || val.Kind() != KindArray {
		return MetamethodNames()
	}
	names := make([]string, 0, len(val.Array()))
	for _, elem := range val.Array() {
		if elem.Kind() == KindString {
			names = append(names, elem.Str())
		}
	}
	return names
}

func installMetamethods(c *Class, names []string) {
	for _, name := range names {
		c.methods[name] = forwardingMetamethod(c, name)
	}
}

// forwardingMetamethod resolves the operator through the superclass's static
// lookup at call time, so an override added to an ancestor later is still
// picked up.
func forwardingMetamethod(c *Class, name string) Value {
	super := c.super
	return NewFunction(c.name+"#"+name, func(self Value, args []Value) (Value, error) {
		method, ok := super.lookupStatic(name)
		if !ok || method.Function() == nil {
			return NewNil(), &AssertionError{Class: c.name, Metamethod: name}
		}
		return method.Function().Fn(self, args)
	})
}

// Apply invokes operator op on receiver. Instances resolve op from their
// class's own namespace only; the trampolines installed at subclass time are
// what carry the lookup up the chain. Classes support __call (construct) and
// __tostring.
func Apply(op string, receiver Value, args ...Value) (Value, error) {
	switch receiver.Kind() {
	case KindInstance:
		cls := receiver.Instance().class
		method, ok := cls.OwnMethod(op)
		if !ok {
			return NewNil(), fmt.Errorf("%w: %s on instance of %s", ErrUnsupportedOperator, op, cls.name)
		}
		return callMember(method, receiver, cls.name+"#"+op, args)
	case KindClass:
		cls := receiver.Class()
		switch op {
		case OpCall:
			inst, err := cls.New(args...)
			if err != nil {
				return NewNil(), err
			}
			return NewInstance(inst), nil
		case OpToString:
			return NewString(cls.String()), nil
		}
	}
	return NewNil(), fmt.Errorf("%w: %s on %s", ErrUnsupportedOperator, op, receiver.Kind())
}
