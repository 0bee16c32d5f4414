package lineage

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindHash:
		return "hash"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	case KindMixin:
		return "mixin"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.data.(string)
	case KindNil:
		return "nil"
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.data.(int64))
	case KindFloat:
		return fmt.Sprintf("%g", v.data.(float64))
	case KindArray:
		elems := v.data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.String()
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case KindHash:
		entries := v.data.(map[string]Value)
		if len(entries) == 0 {
			return "{}"
		}
		parts := make([]string, 0, len(entries))
		for _, k := range slices.Sorted(maps.Keys(entries)) {
			parts = append(parts, fmt.Sprintf("%s: %s", k, entries[k].String()))
		}
		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	case KindFunction:
		return fmt.Sprintf("<function %s>", v.data.(*Function).Name)
	case KindClass:
		return v.data.(*Class).String()
	case KindInstance:
		return v.data.(*Instance).String()
	case KindMixin:
		return v.data.(*Mixin).String()
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// Same reports whether two values are the same value: scalars compare by
// value, arrays and hashes element-wise, and functions, classes, instances
// and mixins by identity.
func (v Value) Same(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindInt:
		return v.data.(int64) == other.data.(int64)
	case KindFloat:
		return v.data.(float64) == other.data.(float64)
	case KindString:
		return v.data.(string) == other.data.(string)
	case KindArray:
		return slices.EqualFunc(v.Array(), other.Array(), Value.Same)
	case KindHash:
		return maps.EqualFunc(v.Hash(), other.Hash(), Value.Same)
	case KindFunction:
		return v.data.(*Function) == other.data.(*Function)
	case KindClass:
		return v.data.(*Class) == other.data.(*Class)
	case KindInstance:
		return v.data.(*Instance) == other.data.(*Instance)
	case KindMixin:
		return v.data.(*Mixin) == other.data.(*Mixin)
	default:
		return false
	}
}
