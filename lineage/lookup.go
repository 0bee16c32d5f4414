package lineage

type lookupFunc func(name string) (Value, bool)

// wireLookups builds the two read paths of a class.
//
// Instance lookup: own instance keys, then the superclass's instance lookup.
//
// Static lookup: own static keys, then own instance keys (own keys only),
// then the superclass's static lookup. An ancestor's instance members are
// therefore reached only through that ancestor's own static lookup.
func wireLookups(c *Class) {
	static := c.static
	own := c.methods

	if c.super == nil {
		c.lookupMethod = func(name string) (Value, bool) {
			val, ok := own[name]
			return val, ok
		}
		c.lookupStatic = func(name string) (Value, bool) {
			if val, ok := static[name]; ok {
				return val, true
			}
			val, ok := own[name]
			return val, ok
		}
		return
	}

	parentMethod := c.super.lookupMethod
	parentStatic := c.super.lookupStatic
	c.lookupMethod = func(name string) (Value, bool) {
		if val, ok := own[name]; ok {
			return val, true
		}
		return parentMethod(name)
	}
	c.lookupStatic = func(name string) (Value, bool) {
		if val, ok := static[name]; ok {
			return val, true
		}
		if val, ok := own[name]; ok {
			return val, true
		}
		return parentStatic(name)
	}
}

// Lookup resolves an instance member: the class's own definition first,
// then the nearest ancestor's.
func (c *Class) Lookup(name string) (Value, bool) {
	if c == nil {
		return NewNil(), false
	}
	return c.lookupMethod(name)
}

// Get resolves a class-level member. The raw fields name and super come
// first, then the static lookup chain.
func (c *Class) Get(name string) (Value, bool) {
	if c == nil {
		return NewNil(), false
	}
	switch name {
	case "name":
		return NewString(c.name), true
	case "super":
		return NewClass(c.super), true
	}
	return c.lookupStatic(name)
}
