package derive

import (
	"fmt"
	"reflect"
	"strings"

	oolong "github.com/WojciechMazur/oolong"
	"github.com/WojciechMazur/oolong/i18n"
)

// buildUnion assembles the decoder for a union shape. Callers hold r.mu.
//
// Decode reads the discriminator field from the document, compares it against
// the rewritten variant names in declaration order, and hands the entire
// original document (discriminator included) to the first matching variant's
// decoder.
func (r *Registry) buildUnion(rt reflect.Type, shape unionShape, entered *[]reflect.Type) (func(oolong.Value) (any, error), error) {
	spec, ok := r.discriminators[rt]
	if !ok {
		spec = discriminatorSpec{field: DefaultDiscriminatorField}
	}
	rewrite := spec.rewrite
	if rewrite == nil {
		rewrite = func(s string) string { return s }
	}

	n := len(shape.variants)
	names := make([]string, n)
	decs := make([]*anyDecoder, n)
	for i, vt := range shape.variants {
		names[i] = rewrite(vt.Name)
		ad, err := r.deriveLocked(vt.Type, entered)
		if err != nil {
			return nil, fmt.Errorf("derive: union %s variant %q: %w", rt, vt.Name, err)
		}
		decs[i] = ad
	}

	field := spec.field
	return func(v oolong.Value) (any, error) {
		doc, ok := oolong.AsDocument(v)
		if !ok {
			return nil, oolong.Issues{oolong.Issue{Path: "/", Code: oolong.CodeInvalidType, Message: i18n.T(oolong.CodeInvalidType, nil), Hint: "expected document"}}
		}
		dv, found := oolong.Lookup(doc, field)
		if !found || oolong.IsNull(dv) {
			return nil, oolong.Issues{oolong.Issue{Path: "/" + field, Code: oolong.CodeDiscriminatorMissing, Message: i18n.T(oolong.CodeDiscriminatorMissing, nil), Hint: "discriminator missing"}}
		}
		tag, ok := dv.(string)
		if !ok {
			return nil, oolong.Issues{oolong.Issue{Path: "/" + field, Code: oolong.CodeInvalidType, Message: i18n.T(oolong.CodeInvalidType, nil), Hint: "discriminator must be a string"}}
		}
		for i := 0; i < n; i++ {
			if names[i] == tag {
				return decs[i].decodeAny(v)
			}
		}
		return nil, oolong.Issues{oolong.Issue{
			Path:    "/" + field,
			Code:    oolong.CodeDiscriminatorUnknown,
			Message: i18n.T(oolong.CodeDiscriminatorUnknown, nil),
			Hint:    "unknown variant '" + tag + "' (expected one of: " + strings.Join(names, ", ") + ")",
			Params:  map[string]any{"candidates": names},
		}}
	}, nil
}
