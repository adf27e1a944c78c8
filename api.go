package oolong

// Decoder turns a single document value into a T.
//
// DecodeValue must be deterministic and free of observable side effects other
// than the returned result. A Decoder holds no per-call state, so a single
// instance may be shared freely across goroutines.
type Decoder[T any] interface {
	DecodeValue(v Value) (T, error)
}

// DecoderFunc adapts an ordinary function to the Decoder interface.
type DecoderFunc[T any] func(v Value) (T, error)

// DecodeValue implements Decoder.
func (f DecoderFunc[T]) DecodeValue(v Value) (T, error) { return f(v) }

// Map returns a decoder that runs d and, on success, applies f to the decoded
// value. A decode failure propagates unchanged. f must not fail; when the
// adaptation itself can reject values, use TryMap instead.
//
// Map and TryMap are package-level functions because Go methods cannot
// introduce new type parameters.
func Map[T, U any](d Decoder[T], f func(T) U) Decoder[U] {
	return DecoderFunc[U](func(v Value) (U, error) {
		t, err := d.DecodeValue(v)
		if err != nil {
			var zero U
			return zero, err
		}
		return f(t), nil
	})
}

// TryMap returns a decoder that runs d and then f, where f may itself fail.
// The decode failure takes precedence: f runs only when d succeeded, and the
// combined decoder reports whatever f returns. A panic inside f is captured
// as a CodeWrapped failure; an ordinary error from f passes through when it
// already carries Issues and is wrapped otherwise.
func TryMap[T, U any](d Decoder[T], f func(T) (U, error)) Decoder[U] {
	return DecoderFunc[U](func(v Value) (out U, err error) {
		t, derr := d.DecodeValue(v)
		if derr != nil {
			return out, derr
		}
		defer CapturePanic(&err)
		out, ferr := f(t)
		if ferr != nil {
			var zero U
			return zero, WrapError("/", ferr)
		}
		return out, nil
	})
}
