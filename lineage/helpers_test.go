package lineage

import (
	"errors"
	"strings"
	"testing"
)

func mustDefine(t *testing.T, name string, super *Class) *Class {
	t.Helper()
	cls, err := DefineClass(name, super)
	if err != nil {
		t.Fatalf("define %s: %v", name, err)
	}
	return cls
}

func mustNew(t *testing.T, cls *Class, args ...Value) *Instance {
	t.Helper()
	inst, err := cls.New(args...)
	if err != nil {
		t.Fatalf("%s.new: %v", cls.Name(), err)
	}
	return inst
}

func mustSend(t *testing.T, inst *Instance, name string, args ...Value) Value {
	t.Helper()
	val, err := inst.Send(name, args...)
	if err != nil {
		t.Fatalf("%s#%s: %v", inst.Class().Name(), name, err)
	}
	return val
}

func constant(val Value) Func {
	return func(self Value, args []Value) (Value, error) {
		return val, nil
	}
}

func requireErrorIs(t *testing.T, err error, target error, contains string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got %v", target, err)
	}
	if contains != "" && !strings.Contains(err.Error(), contains) {
		t.Fatalf("expected error containing %q, got %q", contains, err.Error())
	}
}
