// Package derive builds oolong decoders from type shapes: an ordered field
// list for records, an ordered variant list for discriminated unions. Shapes,
// leaf decoders and per-type metadata (field renames, discriminator specs)
// live in an explicit Registry rather than process-wide state, so "declared
// once, applied everywhere" still holds without ambient globals.
package derive

import "reflect"

// TypeOf returns the reflect.Type token for T. It is the key under which
// decoders, shapes and metadata are registered, including for interface
// types (union targets).
func TypeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// Field names one record field and the type whose decoder reads it.
type Field struct {
	Name string
	Type reflect.Type
}

// FieldOf is shorthand for Field{Name: name, Type: TypeOf[T]()}.
func FieldOf[T any](name string) Field { return Field{Name: name, Type: TypeOf[T]()} }

// Variant names one union alternative and its concrete type. Declaration
// order is significant: the union decoder probes rewritten variant names in
// this order and the first match wins.
type Variant struct {
	Name string
	Type reflect.Type
}

// VariantOf is shorthand for Variant{Name: name, Type: TypeOf[T]()}.
func VariantOf[T any](name string) Variant { return Variant{Name: name, Type: TypeOf[T]()} }

type recordShape struct {
	fields []Field
	ctor   func([]any) (any, error)
}

type unionShape struct {
	variants []Variant
}

type discriminatorSpec struct {
	field   string
	rewrite func(string) string
}
