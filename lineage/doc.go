// Package lineage implements a small dynamic object model: single-inheritance
// classes with separate static and instance namespaces, mixin composition,
// and operator hooks that forward up the class chain.
//
//   - Every class descends from Object. DefineClass and (*Class).Subclass
//     create new classes; the superclass is fixed at creation.
//   - Instance members resolve through the class and then its ancestors.
//   - Static members resolve through the class's static namespace, then the
//     class's own instance members, then the superclass's static lookup.
//   - Mixins copy members into a class; Includes walks the ancestor chain.
//   - Operator hooks (__add, __tostring, ...) are invoked with Apply. Each
//     subclass gets trampolines that forward to the nearest ancestor binding.
//
// Superclasses track their subclasses weakly, so a discarded class can be
// collected. The model is not safe for concurrent mutation.
package lineage
