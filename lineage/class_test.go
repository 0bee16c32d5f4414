package lineage

import (
	"testing"
)

func TestDefineClassRejectsInvalidNames(t *testing.T) {
	for _, name := range []string{"", "   "} {
		_, err := DefineClass(name, nil)
		requireErrorIs(t, err, ErrInvalidArgument, "non-empty")
	}
}

func TestSubclassRequiresClassReceiver(t *testing.T) {
	var missing *Class
	_, err := missing.Subclass("Orphan")
	requireErrorIs(t, err, ErrInvalidArgument, "not a class")

	subclass, ok := Object.Get("subclass")
	if !ok {
		t.Fatalf("Object.subclass not found")
	}
	_, err = subclass.Function().Call(NewInt(7), NewString("Orphan"))
	requireErrorIs(t, err, ErrInvalidArgument, "must be called on a class")
}

func TestDynamicSubclassRejectsNonStringName(t *testing.T) {
	_, err := Object.Send("subclass", NewInt(3))
	requireErrorIs(t, err, ErrInvalidArgument, "got int")

	_, err = Object.Send("subclass")
	requireErrorIs(t, err, ErrInvalidArgument, "got nothing")
}

func TestDefineClassDefaultsToObject(t *testing.T) {
	cls := mustDefine(t, "Widget", nil)
	if cls.Super() != Object {
		t.Fatalf("expected Object superclass, got %v", cls.Super())
	}
	if cls.Name() != "Widget" || cls.String() != "class Widget" {
		t.Fatalf("unexpected identity: %q / %q", cls.Name(), cls.String())
	}
	if len(cls.Mixins()) != 0 {
		t.Fatalf("new class should have no mixins")
	}
	if len(cls.StaticNames()) != 0 {
		t.Fatalf("new class should have an empty static namespace, got %v", cls.StaticNames())
	}
}

func TestInstanceLookupPrecedence(t *testing.T) {
	base := mustDefine(t, "Base", nil)
	mid := mustDefine(t, "Mid", base)
	leaf := mustDefine(t, "Leaf", mid)

	if err := base.Define("greet", NewString("base")); err != nil {
		t.Fatalf("define: %v", err)
	}
	if val, ok := leaf.Lookup("greet"); !ok || val.Str() != "base" {
		t.Fatalf("expected inherited base greet, got %v (%v)", val, ok)
	}

	if err := mid.Define("greet", NewString("mid")); err != nil {
		t.Fatalf("define: %v", err)
	}
	if val, _ := leaf.Lookup("greet"); val.Str() != "mid" {
		t.Fatalf("expected nearest ancestor greet, got %v", val)
	}

	if err := leaf.Define("greet", NewString("leaf")); err != nil {
		t.Fatalf("define: %v", err)
	}
	if val, _ := leaf.Lookup("greet"); val.Str() != "leaf" {
		t.Fatalf("expected own greet, got %v", val)
	}
	if val, _ := base.Lookup("greet"); val.Str() != "base" {
		t.Fatalf("subclass definition leaked into base: %v", val)
	}

	if _, ok := leaf.Lookup("missing"); ok {
		t.Fatalf("expected missing member to be undefined")
	}
}

func TestStaticLookupPrefersOwnInstanceMembers(t *testing.T) {
	parent := mustDefine(t, "Parent", nil)
	child := mustDefine(t, "Child", parent)

	if err := parent.DefineStatic("label", NewString("parent-static")); err != nil {
		t.Fatalf("define static: %v", err)
	}
	if val, _ := child.Get("label"); val.Str() != "parent-static" {
		t.Fatalf("expected inherited static, got %v", val)
	}

	if err := child.Define("label", NewString("child-instance")); err != nil {
		t.Fatalf("define: %v", err)
	}
	if val, _ := child.Get("label"); val.Str() != "child-instance" {
		t.Fatalf("expected own instance member before inherited static, got %v", val)
	}
	if val, _ := parent.Get("label"); val.Str() != "parent-static" {
		t.Fatalf("parent static changed: %v", val)
	}

	if err := child.DefineStatic("label", NewString("child-static")); err != nil {
		t.Fatalf("define static: %v", err)
	}
	if val, _ := child.Get("label"); val.Str() != "child-static" {
		t.Fatalf("expected own static first, got %v", val)
	}
}

func TestStaticLookupOrderAcrossAncestors(t *testing.T) {
	grand := mustDefine(t, "Grand", nil)
	parent := mustDefine(t, "Parent", grand)
	child := mustDefine(t, "Child", parent)

	if err := parent.DefineStatic("x", NewString("parent-static")); err != nil {
		t.Fatalf("define static: %v", err)
	}
	if err := parent.Define("x", NewString("parent-instance")); err != nil {
		t.Fatalf("define: %v", err)
	}
	if val, _ := child.Get("x"); val.Str() != "parent-static" {
		t.Fatalf("expected parent static before parent instance, got %v", val)
	}

	if err := grand.Define("y", NewString("grand-instance")); err != nil {
		t.Fatalf("define: %v", err)
	}
	if err := parent.DefineStatic("y", NewString("parent-static")); err != nil {
		t.Fatalf("define static: %v", err)
	}
	if val, _ := child.Get("y"); val.Str() != "parent-static" {
		t.Fatalf("expected parent static before grandparent instance, got %v", val)
	}

	if err := grand.Define("z", NewString("grand-instance")); err != nil {
		t.Fatalf("define: %v", err)
	}
	if val, ok := child.Get("z"); !ok || val.Str() != "grand-instance" {
		t.Fatalf("expected grandparent instance member through its static lookup, got %v (%v)", val, ok)
	}
}

func TestClassRawFields(t *testing.T) {
	cls := mustDefine(t, "Gadget", nil)
	if val, _ := cls.Get("name"); val.Str() != "Gadget" {
		t.Fatalf("unexpected name: %v", val)
	}
	if val, _ := cls.Get("super"); val.Class() != Object {
		t.Fatalf("unexpected super: %v", val)
	}
	if val, ok := Object.Get("super"); !ok || !val.IsNil() {
		t.Fatalf("root super should be nil, got %v", val)
	}
}

func TestClassSendErrors(t *testing.T) {
	cls := mustDefine(t, "Sender", nil)
	_, err := cls.Send("nothing")
	requireErrorIs(t, err, ErrUndefinedMember, "Sender.nothing")

	if err := cls.DefineStatic("count", NewInt(3)); err != nil {
		t.Fatalf("define static: %v", err)
	}
	_, err = cls.Send("count")
	requireErrorIs(t, err, ErrNotCallable, "int")
}

func TestStaticMethodReceivesClass(t *testing.T) {
	cls := mustDefine(t, "Factory", nil)
	err := cls.DefineStaticMethod("describe", func(self Value, args []Value) (Value, error) {
		return NewString("built by " + self.Class().Name()), nil
	})
	if err != nil {
		t.Fatalf("define static method: %v", err)
	}
	sub := mustDefine(t, "SubFactory", cls)
	val, err := sub.Send("describe")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if val.Str() != "built by SubFactory" {
		t.Fatalf("unexpected result %q", val.Str())
	}
}

func TestDefineRejectsEmptyMemberName(t *testing.T) {
	cls := mustDefine(t, "Strict", nil)
	requireErrorIs(t, cls.Define("", NewNil()), ErrInvalidArgument, "member name")
	requireErrorIs(t, cls.DefineStatic("", NewNil()), ErrInvalidArgument, "member name")

	var missing *Class
	requireErrorIs(t, missing.Define("x", NewNil()), ErrInvalidArgument, "not a class")
}

func TestOverrideIsNotShared(t *testing.T) {
	base := mustDefine(t, "Shape", nil)
	circle := mustDefine(t, "Circle", base)
	square := mustDefine(t, "Square", base)
	if err := base.DefineMethod("area", constant(NewInt(0))); err != nil {
		t.Fatalf("define: %v", err)
	}

	c := mustNew(t, circle)
	s := mustNew(t, square)
	b := mustNew(t, base)

	if err := circle.DefineMethod("area", constant(NewInt(314))); err != nil {
		t.Fatalf("define: %v", err)
	}

	if got := mustSend(t, c, "area").Int(); got != 314 {
		t.Fatalf("override not visible on existing instance: %d", got)
	}
	if got := mustSend(t, s, "area").Int(); got != 0 {
		t.Fatalf("override leaked to sibling: %d", got)
	}
	if got := mustSend(t, b, "area").Int(); got != 0 {
		t.Fatalf("override leaked to superclass: %d", got)
	}
}
