package lineage

import "testing"

func TestSubclassRelation(t *testing.T) {
	animal := defineAnimal(t)
	dog := mustDefine(t, "Dog", animal)

	classes := []*Class{animal, dog}
	for _, c := range classes {
		if c.IsSubclassOf(c) {
			t.Fatalf("%s should not be a subclass of itself", c.Name())
		}
		if !c.IsSubclassOf(Object) {
			t.Fatalf("%s should be a subclass of Object", c.Name())
		}
	}
	if Object.IsSubclassOf(Object) {
		t.Fatalf("Object should not be a subclass of itself")
	}
	if !dog.IsSubclassOf(animal) {
		t.Fatalf("Dog should be a subclass of Animal")
	}
	if animal.IsSubclassOf(dog) {
		t.Fatalf("Animal should not be a subclass of Dog")
	}
	if dog.IsSubclassOf(nil) {
		t.Fatalf("nil is never a superclass")
	}
}

func TestInstanceOfAncestors(t *testing.T) {
	animal := defineAnimal(t)
	dog := mustDefine(t, "Dog", animal)
	puppy := mustDefine(t, "Puppy", dog)

	bit := mustNew(t, puppy, NewString("Bit"))
	for _, c := range []*Class{puppy, dog, animal, Object} {
		if !bit.IsInstanceOf(c) {
			t.Fatalf("Bit should be an instance of %s", c.Name())
		}
	}

	rex := mustNew(t, dog, NewString("Rex"))
	if !rex.IsInstanceOf(animal) {
		t.Fatalf("Dog.new should be an instance of Animal")
	}
	generic := mustNew(t, animal, NewString("Generic"))
	if generic.IsInstanceOf(dog) {
		t.Fatalf("Animal.new should not be an instance of Dog")
	}
	if generic.IsInstanceOf(mustDefine(t, "Cat", animal)) {
		t.Fatalf("Animal.new should not be an instance of a sibling subclass")
	}
}

func TestValuePredicatesAreDefensive(t *testing.T) {
	animal := defineAnimal(t)
	speaker := speakerMixin(t)
	inst := NewInstance(mustNew(t, animal))

	cases := []struct {
		name string
		got  bool
	}{
		{"subclass of int", IsSubclassOf(NewClass(animal), NewInt(1))},
		{"int subclass of class", IsSubclassOf(NewInt(1), NewClass(Object))},
		{"nil includes mixin", Includes(NewNil(), NewMixinValue(speaker))},
		{"class includes string", Includes(NewClass(animal), NewString("Speaker"))},
		{"nil instance of class", IsInstanceOf(NewNil(), NewClass(Object))},
		{"class instance of class", IsInstanceOf(NewClass(animal), NewClass(Object))},
		{"instance of hash", IsInstanceOf(inst, NewHash(nil))},
	}
	for _, tc := range cases {
		if tc.got {
			t.Fatalf("%s: expected false", tc.name)
		}
	}

	if !IsSubclassOf(NewClass(animal), NewClass(Object)) {
		t.Fatalf("expected value-level subclass check to succeed")
	}
	if !IsInstanceOf(inst, NewClass(animal)) {
		t.Fatalf("expected value-level instance check to succeed")
	}
}

func TestDynamicPredicatesNeverFail(t *testing.T) {
	animal := defineAnimal(t)
	inst := mustNew(t, animal)

	checks := []struct {
		name string
		call func() (Value, error)
		want bool
	}{
		{"isSubclassOf without args", func() (Value, error) { return animal.Send("isSubclassOf") }, false},
		{"isSubclassOf Object", func() (Value, error) { return animal.Send("isSubclassOf", NewClass(Object)) }, true},
		{"includes int", func() (Value, error) { return animal.Send("includes", NewInt(1)) }, false},
		{"isInstanceOf string", func() (Value, error) { return inst.Send("isInstanceOf", NewString("Animal")) }, false},
		{"isInstanceOf Animal", func() (Value, error) { return inst.Send("isInstanceOf", NewClass(animal)) }, true},
	}
	for _, tc := range checks {
		val, err := tc.call()
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if val.Kind() != KindBool || val.Bool() != tc.want {
			t.Fatalf("%s: want %v, got %v", tc.name, tc.want, val)
		}
	}
}
