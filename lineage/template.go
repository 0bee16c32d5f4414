package lineage

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var templatePattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.-]*)\s*\}\}`)

// NewTemplateMethod returns a method that renders tmpl against its receiver.
// Each {{ path }} placeholder is resolved member by member along the dotted
// path; members that are functions are called with no arguments.
func NewTemplateMethod(name, tmpl string) Value {
	return NewFunction(name, func(self Value, args []Value) (Value, error) {
		out, err := renderTemplate(tmpl, self)
		if err != nil {
			return NewNil(), err
		}
		return NewString(out), nil
	})
}

func renderTemplate(tmpl string, self Value) (string, error) {
	var renderErr error
	out := templatePattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		if renderErr != nil {
			return ""
		}
		path := templatePattern.FindStringSubmatch(match)[1]
		val, err := resolvePath(self, path)
		if err != nil {
			renderErr = err
			return ""
		}
		return val.String()
	})
	if renderErr != nil {
		return "", renderErr
	}
	return out, nil
}

func resolvePath(root Value, path string) (Value, error) {
	current := root
	for _, segment := range strings.Split(path, ".") {
		next, ok := memberOf(current, segment)
		if !ok {
			return NewNil(), fmt.Errorf("%w: %s (at %q)", ErrUndefinedMember, path, segment)
		}
		if fn := next.Function(); fn != nil {
			val, err := fn.Fn(current, nil)
			if err != nil {
				return NewNil(), err
			}
			next = val
		}
		current = next
	}
	return current, nil
}

func memberOf(v Value, name string) (Value, bool) {
	switch v.Kind() {
	case KindInstance:
		return v.Instance().Get(name)
	case KindClass:
		return v.Class().Get(name)
	case KindHash:
		val, ok := v.Hash()[name]
		return val, ok
	default:
		return NewNil(), false
	}
}

// NewFieldInitializer returns an initialize for c that first forwards all
// arguments to the superclass's initialize and then assigns fields from the
// arguments by position. Fields without a matching argument are set to nil.
func NewFieldInitializer(c *Class, fields []string) Value {
	names := slices.Clone(fields)
	super := c.super
	return NewFunction(c.name+"#initialize", func(self Value, args []Value) (Value, error) {
		inst := self.Instance()
		if inst == nil {
			return NewNil(), invalidArgument("initialize must be called on an instance, got %s", self.Kind())
		}
		if super != nil {
			if init, ok := super.lookupStatic("initialize"); ok {
				if _, err := callMember(init, self, super.name+"#initialize", args); err != nil {
					return NewNil(), err
				}
			}
		}
		for i, name := range names {
			val := NewNil()
			if i < len(args) {
				val = args[i]
			}
			inst.Set(name, val)
		}
		return NewNil(), nil
	})
}

// DefineFields installs a field initializer as c's own initialize.
func (c *Class) DefineFields(fields ...string) error {
	if c == nil {
		return invalidArgument("define fields: receiver is not a class")
	}
	for _, field := range fields {
		if err := validateMemberName(c.name, field); err != nil {
			return err
		}
	}
	return c.Define("initialize", NewFieldInitializer(c, fields))
}
