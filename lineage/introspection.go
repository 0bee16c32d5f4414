package lineage

// IsSubclassOf reports whether other is a proper ancestor of c. A class is
// never a subclass of itself, and the root is a subclass of nothing.
func (c *Class) IsSubclassOf(other *Class) bool {
	if c == nil || other == nil || c.super == nil {
		return false
	}
	return c.super == other || c.super.IsSubclassOf(other)
}

// Includes reports whether m was included on c or on any ancestor of c.
func (c *Class) Includes(m *Mixin) bool {
	if c == nil || m == nil {
		return false
	}
	if _, ok := c.mixins[m]; ok {
		return true
	}
	return c.super.Includes(m)
}

func (i *Instance) IsInstanceOf(c *Class) bool {
	if i == nil || c == nil {
		return false
	}
	return i.class == c || i.class.IsSubclassOf(c)
}

// IsSubclassOf is the value-level form of (*Class).IsSubclassOf. Any
// argument that is not a class yields false.
func IsSubclassOf(class, other Value) bool {
	return class.Class().IsSubclassOf(other.Class())
}

// Includes is the value-level form of (*Class).Includes.
func Includes(class, mixin Value) bool {
	return class.Class().Includes(mixin.Mixin())
}

// IsInstanceOf is the value-level form of (*Instance).IsInstanceOf.
func IsInstanceOf(obj, class Value) bool {
	return obj.Instance().IsInstanceOf(class.Class())
}
