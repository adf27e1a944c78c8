package codec

import (
	"strconv"

	oolong "github.com/WojciechMazur/oolong"
)

// Nullable wraps a decoder so that null (and absent fields, which records
// forward as null) decodes to nil instead of failing. Non-null values decode
// through d and are returned by pointer.
func Nullable[T any](d oolong.Decoder[T]) oolong.Decoder[*T] {
	return oolong.DecoderFunc[*T](func(v oolong.Value) (*T, error) {
		if oolong.IsNull(v) {
			return nil, nil
		}
		t, err := d.DecodeValue(v)
		if err != nil {
			return nil, err
		}
		return &t, nil
	})
}

// Default wraps a decoder so that null decodes to the given fallback value.
func Default[T any](d oolong.Decoder[T], fallback T) oolong.Decoder[T] {
	return oolong.DecoderFunc[T](func(v oolong.Value) (T, error) {
		if oolong.IsNull(v) {
			return fallback, nil
		}
		return d.DecodeValue(v)
	})
}

// SliceOf decodes an array whose elements all decode through d. Element
// failures are reported under the element index.
func SliceOf[T any](d oolong.Decoder[T]) oolong.Decoder[[]T] {
	return oolong.OfArray(func(a oolong.Array) ([]T, error) {
		out := make([]T, 0, len(a))
		for i, el := range a {
			t, err := d.DecodeValue(el)
			if err != nil {
				return nil, oolong.Rebase("/"+strconv.Itoa(i), err)
			}
			out = append(out, t)
		}
		return out, nil
	})
}

// MapOf decodes a document with homogeneous values into a Go map. Key order
// is not preserved; use this for dictionary-like documents, not records.
func MapOf[T any](d oolong.Decoder[T]) oolong.Decoder[map[string]T] {
	return oolong.OfDocument(func(doc oolong.Document) (map[string]T, error) {
		out := make(map[string]T, len(doc))
		for _, e := range doc {
			t, err := d.DecodeValue(e.Value)
			if err != nil {
				return nil, oolong.Rebase("/"+e.Key, err)
			}
			out[e.Key] = t
		}
		return out, nil
	})
}
