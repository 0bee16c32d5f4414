package lineage

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindHash
	KindFunction
	KindClass
	KindInstance
	KindMixin
)

type Value struct {
	kind ValueKind
	data any
}

// Func is the Go signature of every callable member. self is the receiving
// instance for instance members and the receiving class for static members.
type Func func(self Value, args []Value) (Value, error)

type Function struct {
	Name string
	Fn   Func
}

// Call invokes the function with self as the receiver.
func (f *Function) Call(self Value, args ...Value) (Value, error) {
	return f.Fn(self, args)
}
