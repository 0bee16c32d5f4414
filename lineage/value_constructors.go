package lineage

func NewNil() Value            { return Value{kind: KindNil} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }
func NewArray(a []Value) Value { return Value{kind: KindArray, data: a} }
func NewHash(h map[string]Value) Value {
	return Value{kind: KindHash, data: h}
}

func NewClass(c *Class) Value {
	if c == nil {
		return NewNil()
	}
	return Value{kind: KindClass, data: c}
}

func NewInstance(inst *Instance) Value {
	if inst == nil {
		return NewNil()
	}
	return Value{kind: KindInstance, data: inst}
}

func NewMixinValue(m *Mixin) Value {
	if m == nil {
		return NewNil()
	}
	return Value{kind: KindMixin, data: m}
}

func NewFunction(name string, fn Func) Value {
	return Value{kind: KindFunction, data: &Function{Name: name, Fn: fn}}
}

func newStrings(names []string) Value {
	elems := make([]Value, len(names))
	for i, name := range names {
		elems[i] = NewString(name)
	}
	return NewArray(elems)
}
