package lineage

import (
	"fmt"
	"maps"
)

// Instance is an object created by a class. Fields live on the instance;
// everything else resolves through the class's instance lookup.
type Instance struct {
	class  *Class
	fields map[string]Value
}

// Allocate returns a bare instance of c without running initialize.
func (c *Class) Allocate() (*Instance, error) {
	if c == nil {
		return nil, invalidArgument("allocate: receiver is not a class")
	}
	return &Instance{class: c, fields: make(map[string]Value)}, nil
}

// New allocates an instance and runs its initialize with args. A failing
// initialize discards the instance and returns the error.
func (c *Class) New(args ...Value) (*Instance, error) {
	inst, err := c.Allocate()
	if err != nil {
		return nil, err
	}
	if _, err := inst.Send("initialize", args...); err != nil {
		return nil, err
	}
	return inst, nil
}

func (i *Instance) Class() *Class { return i.class }

// Get resolves name on the instance: own fields, then the class member,
// then the class's instance lookup chain.
func (i *Instance) Get(name string) (Value, bool) {
	if val, ok := i.fields[name]; ok {
		return val, true
	}
	if name == "class" {
		return NewClass(i.class), true
	}
	return i.class.Lookup(name)
}

// Field reads an own field only.
func (i *Instance) Field(name string) (Value, bool) {
	val, ok := i.fields[name]
	return val, ok
}

func (i *Instance) Set(name string, val Value) {
	i.fields[name] = val
}

func (i *Instance) Fields() map[string]Value {
	return maps.Clone(i.fields)
}

// Send resolves name on the instance and calls it with the instance as self.
func (i *Instance) Send(name string, args ...Value) (Value, error) {
	member, ok := i.Get(name)
	if !ok {
		return NewNil(), fmt.Errorf("%w: %s#%s", ErrUndefinedMember, i.class.name, name)
	}
	return callMember(member, NewInstance(i), i.class.name+"#"+name, args)
}

func (i *Instance) String() string {
	fallback := "instance of " + i.class.String()
	res, err := Apply(OpToString, NewInstance(i))
	if err != nil || res.Kind() == KindInstance {
		return fallback
	}
	return res.String()
}
