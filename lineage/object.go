package lineage

import "fmt"

// Object is the root of every class hierarchy. It is created once, when the
// package is initialised.
var Object = mustCreateRoot("Object")

func mustCreateRoot(name string) *Class {
	root, err := createRootClass(name)
	if err != nil {
		panic(err)
	}
	installRootStatics(root)
	installRootMethods(root)
	return root
}

func classReceiver(self Value, op string) (*Class, error) {
	cls := self.Class()
	if cls == nil {
		return nil, invalidArgument("%s must be called on a class, got %s", op, self.Kind())
	}
	return cls, nil
}

func installRootStatics(root *Class) {
	root.static[metamethodsKey] = newStrings(defaultMetamethods)

	root.static["allocate"] = NewFunction("Object.allocate", func(self Value, args []Value) (Value, error) {
		cls, err := classReceiver(self, "allocate")
		if err != nil {
			return NewNil(), err
		}
		inst, err := cls.Allocate()
		if err != nil {
			return NewNil(), err
		}
		return NewInstance(inst), nil
	})

	root.static["new"] = NewFunction("Object.new", func(self Value, args []Value) (Value, error) {
		cls, err := classReceiver(self, "new")
		if err != nil {
			return NewNil(), err
		}
		inst, err := cls.New(args...)
		if err != nil {
			return NewNil(), err
		}
		return NewInstance(inst), nil
	})

	root.static["subclass"] = NewFunction("Object.subclass", func(self Value, args []Value) (Value, error) {
		cls, err := classReceiver(self, "subclass")
		if err != nil {
			return NewNil(), err
		}
		if len(args) == 0 || args[0].Kind() != KindString {
			got := "nothing"
			if len(args) > 0 {
				got = args[0].Kind().String()
			}
			return NewNil(), invalidArgument("subclass name must be a string, got %s", got)
		}
		child, err := cls.Subclass(args[0].Str())
		if err != nil {
			return NewNil(), err
		}
		return NewClass(child), nil
	})

	root.static["subclassed"] = NewFunction("Object.subclassed", func(self Value, args []Value) (Value, error) {
		return NewNil(), nil
	})

	root.static["include"] = NewFunction("Object.include", func(self Value, args []Value) (Value, error) {
		cls, err := classReceiver(self, "include")
		if err != nil {
			return NewNil(), err
		}
		mixins, err := mixinArgs(args)
		if err != nil {
			return NewNil(), err
		}
		if _, err := cls.Include(mixins...); err != nil {
			return NewNil(), err
		}
		return self, nil
	})

	root.static["includes"] = NewFunction("Object.includes", func(self Value, args []Value) (Value, error) {
		return NewBool(len(args) > 0 && Includes(self, args[0])), nil
	})

	root.static["isSubclassOf"] = NewFunction("Object.isSubclassOf", func(self Value, args []Value) (Value, error) {
		return NewBool(len(args) > 0 && IsSubclassOf(self, args[0])), nil
	})
}

func installRootMethods(root *Class) {
	root.methods["initialize"] = NewFunction("Object#initialize", func(self Value, args []Value) (Value, error) {
		return NewNil(), nil
	})

	root.methods["isInstanceOf"] = NewFunction("Object#isInstanceOf", func(self Value, args []Value) (Value, error) {
		return NewBool(len(args) > 0 && IsInstanceOf(self, args[0])), nil
	})

	root.methods[OpToString] = NewFunction("Object#"+OpToString, func(self Value, args []Value) (Value, error) {
		inst := self.Instance()
		if inst == nil {
			return NewNil(), invalidArgument("%s must be called on an instance, got %s", OpToString, self.Kind())
		}
		return NewString(fmt.Sprintf("instance of %s", inst.class)), nil
	})
}
