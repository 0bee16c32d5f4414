package lineage

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestOperatorDefinedHighUpIsUsableOnGrandchild(t *testing.T) {
	base := mustDefine(t, "Vector", nil)
	mid := mustDefine(t, "Vector2", base)
	leaf := mustDefine(t, "Vector3", mid)

	err := base.DefineMethod(OpAdd, func(self Value, args []Value) (Value, error) {
		return NewString(self.Instance().Class().Name() + "+" + args[0].String()), nil
	})
	if err != nil {
		t.Fatalf("define: %v", err)
	}

	v := mustNew(t, leaf)
	got, err := Apply(OpAdd, NewInstance(v), NewInt(1))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.Str() != "Vector3+1" {
		t.Fatalf("unexpected result %q", got.Str())
	}
}

func TestIntermediateOverrideIsPickedUp(t *testing.T) {
	base := mustDefine(t, "Money", nil)
	mid := mustDefine(t, "Currency", base)
	leaf := mustDefine(t, "Euro", mid)
	if err := base.DefineMethod(OpMul, constant(NewString("base"))); err != nil {
		t.Fatalf("define: %v", err)
	}
	if err := mid.DefineMethod(OpMul, constant(NewString("mid"))); err != nil {
		t.Fatalf("define: %v", err)
	}

	got, err := Apply(OpMul, NewInstance(mustNew(t, leaf)))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.Str() != "mid" {
		t.Fatalf("expected intermediate override, got %q", got.Str())
	}
	got, err = Apply(OpMul, NewInstance(mustNew(t, base)))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.Str() != "base" {
		t.Fatalf("expected base operator on base instance, got %q", got.Str())
	}
}

func TestMissingOperatorIsAssertion(t *testing.T) {
	base := mustDefine(t, "Opaque", nil)
	leaf := mustDefine(t, "OpaqueLeaf", base)

	_, err := Apply(OpSub, NewInstance(mustNew(t, leaf)), NewInt(1))
	if !errors.Is(err, ErrMissingMetamethod) {
		t.Fatalf("expected missing metamethod, got %v", err)
	}
	var assertion *AssertionError
	if !errors.As(err, &assertion) {
		t.Fatalf("expected AssertionError, got %T", err)
	}
	if assertion.Metamethod != OpSub || assertion.Class != "Opaque" {
		t.Fatalf("unexpected assertion %+v", assertion)
	}
	if !strings.Contains(err.Error(), "class Opaque doesn't implement metamethod '__sub'") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestNonFunctionOperatorBindingIsAssertion(t *testing.T) {
	base := mustDefine(t, "Sized", nil)
	leaf := mustDefine(t, "SizedLeaf", base)
	if err := base.Define(OpLen, NewInt(3)); err != nil {
		t.Fatalf("define: %v", err)
	}

	_, err := Apply(OpLen, NewInstance(mustNew(t, leaf)))
	if !errors.Is(err, ErrMissingMetamethod) {
		t.Fatalf("expected missing metamethod, got %v", err)
	}
	_, err = Apply(OpLen, NewInstance(mustNew(t, base)))
	requireErrorIs(t, err, ErrNotCallable, OpLen)
}

func TestRootInstanceHasNoArithmetic(t *testing.T) {
	obj := mustNew(t, Object)
	_, err := Apply(OpAdd, NewInstance(obj), NewInt(1))
	requireErrorIs(t, err, ErrUnsupportedOperator, OpAdd)

	_, err = Apply(OpAdd, NewInt(1), NewInt(1))
	requireErrorIs(t, err, ErrUnsupportedOperator, "int")
}

func TestToStringForwarding(t *testing.T) {
	animal := defineAnimal(t)
	dog := mustDefine(t, "Dog", animal)
	rex := mustNew(t, dog, NewString("Rex"))

	if got := rex.String(); got != "instance of class Dog" {
		t.Fatalf("unexpected default tostring %q", got)
	}
	if err := animal.Define(OpToString, NewTemplateMethod("Animal#__tostring", "animal {{name}}")); err != nil {
		t.Fatalf("define: %v", err)
	}
	if got := rex.String(); got != "animal Rex" {
		t.Fatalf("unexpected forwarded tostring %q", got)
	}
	if got := NewInstance(rex).String(); got != "animal Rex" {
		t.Fatalf("value rendering should use tostring, got %q", got)
	}
}

func TestClassOperators(t *testing.T) {
	animal := defineAnimal(t)
	val, err := Apply(OpCall, NewClass(animal), NewString("Generic"))
	if err != nil {
		t.Fatalf("apply call: %v", err)
	}
	if name, _ := val.Instance().Get("name"); name.Str() != "Generic" {
		t.Fatalf("class call should construct, got %v", val)
	}
	val, err = Apply(OpToString, NewClass(animal))
	if err != nil || val.Str() != "class Animal" {
		t.Fatalf("unexpected class tostring %v (%v)", val, err)
	}
	_, err = Apply(OpAdd, NewClass(animal))
	requireErrorIs(t, err, ErrUnsupportedOperator, "class")
}

func TestCustomMetamethodList(t *testing.T) {
	parent := mustDefine(t, "Narrow", nil)
	if err := parent.DefineStatic(metamethodsKey, NewArray([]Value{NewString(OpAdd), NewInt(4)})); err != nil {
		t.Fatalf("define: %v", err)
	}
	child := mustDefine(t, "NarrowChild", parent)
	if _, ok := child.OwnMethod(OpAdd); !ok {
		t.Fatalf("expected trampoline for %s", OpAdd)
	}
	if _, ok := child.OwnMethod(OpSub); ok {
		t.Fatalf("unexpected trampoline for %s", OpSub)
	}
}

func TestEverySubclassGetsTrampolines(t *testing.T) {
	cls := mustDefine(t, "Full", nil)
	methods := cls.MethodNames()
	for _, op := range MetamethodNames() {
		if !slices.Contains(methods, op) {
			t.Fatalf("missing trampoline %s in %v", op, methods)
		}
	}
	if !slices.Contains(methods, "initialize") {
		t.Fatalf("missing default initialize in %v", methods)
	}
}
