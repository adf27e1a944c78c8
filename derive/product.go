package derive

import (
	"fmt"
	"reflect"

	oolong "github.com/WojciechMazur/oolong"
	"github.com/WojciechMazur/oolong/i18n"
)

// buildRecord assembles the decoder for a record shape. Callers hold r.mu.
//
// Decode walks the declared fields in order, translating each logical field
// name through the rename map to the document key it probes. An absent key is
// forwarded to the field decoder as null; whether that is acceptable is the
// field decoder's call (codec.Nullable accepts it, scalar decoders reject
// it). Every field is attempted before any failure is reported, and only the
// failure of the earliest-declared failing field survives.
func (r *Registry) buildRecord(rt reflect.Type, shape recordShape, entered *[]reflect.Type) (func(oolong.Value) (any, error), error) {
	ren := r.renames[rt]
	n := len(shape.fields)
	keys := make([]string, n)
	decs := make([]*anyDecoder, n)
	for i, f := range shape.fields {
		key := f.Name
		if mapped, ok := ren[f.Name]; ok {
			key = mapped
		}
		keys[i] = key
		ad, err := r.deriveLocked(f.Type, entered)
		if err != nil {
			return nil, fmt.Errorf("derive: record %s field %q: %w", rt, f.Name, err)
		}
		decs[i] = ad
	}

	ctor := shape.ctor
	return func(v oolong.Value) (out any, err error) {
		doc, ok := oolong.AsDocument(v)
		if !ok {
			return nil, oolong.Issues{oolong.Issue{Path: "/", Code: oolong.CodeInvalidType, Message: i18n.T(oolong.CodeInvalidType, nil), Hint: "expected document"}}
		}
		values := make([]any, n)
		var failed []oolong.Issues
		for i := 0; i < n; i++ {
			fv, found := oolong.Lookup(doc, keys[i])
			if !found {
				fv = nil // absent key decodes as null
			}
			fval, ferr := decs[i].decodeAny(fv)
			if ferr != nil {
				failed = append(failed, oolong.Rebase("/"+keys[i], ferr))
				continue
			}
			values[i] = fval
		}
		if len(failed) > 0 {
			return nil, failed[0]
		}
		defer oolong.CapturePanic(&err)
		out, cerr := ctor(values)
		if cerr != nil {
			return nil, oolong.WrapError("/", cerr)
		}
		return out, nil
	}, nil
}
