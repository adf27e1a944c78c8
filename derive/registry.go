package derive

import (
	"fmt"
	"reflect"
	"sync"

	oolong "github.com/WojciechMazur/oolong"
)

// DefaultDiscriminatorField is probed when a union has no registered
// discriminator spec.
const DefaultDiscriminatorField = "_t"

// Registry holds everything derivation needs for a family of types: leaf
// decoders, record and union shapes, rename maps, discriminator specs, and
// memoized derived decoders.
//
// Register everything at initialization, then call Derive. Registration and
// derivation are serialized internally, so distinct goroutines may derive
// distinct types concurrently; the decoders that come out are immutable and
// need no synchronization at decode time.
type Registry struct {
	mu             sync.Mutex
	decoders       map[reflect.Type]func(oolong.Value) (any, error)
	records        map[reflect.Type]recordShape
	unions         map[reflect.Type]unionShape
	renames        map[reflect.Type]map[string]string
	discriminators map[reflect.Type]discriminatorSpec
	derived        map[reflect.Type]*anyDecoder
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		decoders:       map[reflect.Type]func(oolong.Value) (any, error){},
		records:        map[reflect.Type]recordShape{},
		unions:         map[reflect.Type]unionShape{},
		renames:        map[reflect.Type]map[string]string{},
		discriminators: map[reflect.Type]discriminatorSpec{},
		derived:        map[reflect.Type]*anyDecoder{},
	}
}

// Register associates a ready decoder with T. Derivation uses it verbatim
// wherever T appears as a field or variant type. Register before deriving:
// derived decoders are memoized, so a decoder registered after T (or a shape
// containing T) has been derived is not picked up.
func Register[T any](r *Registry, d oolong.Decoder[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[TypeOf[T]()] = func(v oolong.Value) (any, error) { return d.DecodeValue(v) }
}

// RegisterRecord declares T as a record assembled from fields in the given
// order. ctor receives the decoded field values in that same order and builds
// the T.
//
// When a document is decoded, every field is attempted; if more than one
// fails, only the failure of the earliest-declared field is reported and the
// rest are discarded.
func RegisterRecord[T any](r *Registry, ctor func(values []any) (T, error), fields ...Field) error {
	if ctor == nil {
		return fmt.Errorf("derive: record %s: nil constructor", TypeOf[T]())
	}
	if len(fields) == 0 {
		return fmt.Errorf("derive: record %s: field list must not be empty", TypeOf[T]())
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" || f.Type == nil {
			return fmt.Errorf("derive: record %s: field with empty name or nil type", TypeOf[T]())
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("derive: record %s: duplicate field %q", TypeOf[T](), f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[TypeOf[T]()] = recordShape{
		fields: append([]Field(nil), fields...),
		ctor:   func(values []any) (any, error) { return ctor(values) },
	}
	return nil
}

// RegisterUnion declares T (typically an interface type) as a tagged union of
// the given variants, dispatched on a discriminator field. Variant order is
// preserved; if two variants rewrite to the same discriminator value, the
// first declared wins.
func RegisterUnion[T any](r *Registry, variants ...Variant) error {
	if len(variants) == 0 {
		return fmt.Errorf("derive: union %s: variant list must not be empty", TypeOf[T]())
	}
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if v.Name == "" || v.Type == nil {
			return fmt.Errorf("derive: union %s: variant with empty name or nil type", TypeOf[T]())
		}
		if _, dup := seen[v.Name]; dup {
			return fmt.Errorf("derive: union %s: duplicate variant %q", TypeOf[T](), v.Name)
		}
		seen[v.Name] = struct{}{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unions[TypeOf[T]()] = unionShape{variants: append([]Variant(nil), variants...)}
	return nil
}

// RenameFields overrides the document keys probed for the named logical
// fields of record T. Fields absent from the mapping use their logical name
// verbatim as the document key. Two logical fields must not map to the same
// document key; such a mapping is rejected.
func RenameFields[T any](r *Registry, mapping map[string]string) error {
	byKey := make(map[string]string, len(mapping))
	for name, key := range mapping {
		if name == "" || key == "" {
			return fmt.Errorf("derive: rename for %s: empty field name or document key", TypeOf[T]())
		}
		if prev, dup := byKey[key]; dup {
			first, second := prev, name
			if second < first {
				first, second = second, first
			}
			return fmt.Errorf("derive: rename for %s: fields %q and %q both map to key %q", TypeOf[T](), first, second, key)
		}
		byKey[key] = name
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m := make(map[string]string, len(mapping))
	for k, v := range mapping {
		m[k] = v
	}
	r.renames[TypeOf[T]()] = m
	return nil
}

// Discriminator sets the discriminator field name and variant-name rewrite
// for union T. A nil rewrite means identity. At most one spec applies per
// union: the first registration wins and later calls are ignored.
func Discriminator[T any](r *Registry, field string, rewrite func(string) string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt := TypeOf[T]()
	if _, exists := r.discriminators[rt]; exists {
		return
	}
	r.discriminators[rt] = discriminatorSpec{field: field, rewrite: rewrite}
}
