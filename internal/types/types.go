// Package types is the engine's minimal type representation: enough
// to answer "what type does this expression have" and "what fields
// and methods does this struct type have" for completion, without
// carrying the full unification/inference machinery a compiler needs.
// Grounded on macros_api::{Type, StructType} as consumed by
// completion.rs's complete_type_fields_and_methods and
// type_at_location.
package types

import "orbitlang.org/go/internal/defmap"

// Type is any resolved type a completed expression can have. Mirrors
// the subset of noirc_frontend::Type that completion.rs actually
// switches on: struct types (for field/method completion), references
// (auto-deref before completing), and a catch-all for everything else
// the walker only needs to carry around, never introspect.
type Type interface {
	typeNode()
	String() string
}

// Struct is a named struct type applied to zero or more generic
// arguments, e.g. `Foo<Field>`.
type Struct struct {
	Def       *StructType
	Generics  []Type
}

// Reference is `&T` or `&mut T`; completion auto-derefs through it
// before looking up fields/methods, matching the original's handling
// of MutableReference in type_at_location callers.
type Reference struct {
	Mutable bool
	Element Type
}

// Tuple is `(T1, T2, ...)`.
type Tuple struct{ Elements []Type }

// Slice is `[T]`.
type Slice struct{ Element Type }

// Array is `[T; N]`.
type Array struct {
	Element Type
	Length  int
}

// TypeVariable stands for a not-yet-resolved inference variable; it
// carries no fields or methods, so completion on it yields nothing.
type TypeVariable struct{ Name string }

// Opaque is any type the engine tracks only by display name (numeric
// types, bool, unit, function types) because completion never needs
// to look inside them.
type Opaque struct{ Name string }

func (Struct) typeNode()       {}
func (Reference) typeNode()    {}
func (Tuple) typeNode()        {}
func (Slice) typeNode()        {}
func (Array) typeNode()        {}
func (TypeVariable) typeNode() {}
func (Opaque) typeNode()       {}

func (s Struct) String() string {
	if s.Def == nil {
		return "<struct>"
	}
	return s.Def.Name
}
func (r Reference) String() string {
	if r.Mutable {
		return "&mut " + r.Element.String()
	}
	return "&" + r.Element.String()
}
func (t Tuple) String() string {
	out := "("
	for i, e := range t.Elements {
		if i > 0 {
			out += ", "
		}
		out += e.String()
	}
	return out + ")"
}
func (s Slice) String() string        { return "[" + s.Element.String() + "]" }
func (a Array) String() string        { return "[" + a.Element.String() + "; N]" }
func (v TypeVariable) String() string { return v.Name }
func (o Opaque) String() string       { return o.Name }

// Deref strips reference layers so callers always work with the
// underlying value type, mirroring how completion.rs follows
// MutableReference before checking for a struct.
func Deref(t Type) Type {
	for {
		r, ok := t.(Reference)
		if !ok {
			return t
		}
		t = r.Element
	}
}

// StructField is one field of a struct type.
type StructField struct {
	Name       string
	Type       Type
	Visibility defmap.ItemVisibility
}

// Method is one method defined on a struct type, either via an
// inherent impl or a trait impl.
type Method struct {
	Name       string
	FuncID     defmap.FuncID
	Visibility defmap.ItemVisibility
	// FromTrait is the trait this method was brought in through, or
	// nil for an inherent-impl method. internal/completion offers trait
	// methods alongside inherent ones; it does not check whether the
	// trait is in scope.
	FromTrait *defmap.TraitID
}

// StructType is a struct declaration's shape: its fields, its
// methods, and where it lives (for visibility checks against the
// module that declared it).
type StructType struct {
	ID        defmap.StructID
	Name      string
	Module    defmap.ModuleID
	Generics  []string
	Fields    []StructField
	Methods   []Method
}

// FieldNamed returns the field called name, if any.
func (s *StructType) FieldNamed(name string) (StructField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return StructField{}, false
}
