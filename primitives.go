package oolong

import (
	"fmt"

	"github.com/WojciechMazur/oolong/i18n"
)

// OfDocument builds a decoder from a function defined over Documents. A value
// that is not a Document fails with CodeInvalidType before f runs. A panic
// inside f is captured as a CodeWrapped failure; an ordinary error from f
// passes through when it already carries Issues and is wrapped otherwise.
func OfDocument[T any](f func(Document) (T, error)) Decoder[T] {
	return DecoderFunc[T](func(v Value) (out T, err error) {
		d, ok := AsDocument(v)
		if !ok {
			err = Issues{Issue{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected document"}}
			return
		}
		defer CapturePanic(&err)
		out, ferr := f(d)
		if ferr != nil {
			var zero T
			return zero, WrapError("/", ferr)
		}
		return out, nil
	})
}

// OfArray builds a decoder from a function defined over Arrays; the
// symmetric counterpart of OfDocument.
func OfArray[T any](f func(Array) (T, error)) Decoder[T] {
	return DecoderFunc[T](func(v Value) (out T, err error) {
		a, ok := AsArray(v)
		if !ok {
			err = Issues{Issue{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected array"}}
			return
		}
		defer CapturePanic(&err)
		out, ferr := f(a)
		if ferr != nil {
			var zero T
			return zero, WrapError("/", ferr)
		}
		return out, nil
	})
}

// Partial builds a decoder from a mapping defined only on a subset of inputs.
// f reports whether it matched; an unmatched input fails with
// CodeInvalidOperation describing the value. A panic while matching is
// captured as a CodeWrapped failure.
func Partial[T any](f func(Value) (T, bool)) Decoder[T] {
	return DecoderFunc[T](func(v Value) (out T, err error) {
		defer CapturePanic(&err)
		out, ok := f(v)
		if !ok {
			var zero T
			return zero, Issues{Issue{
				Path:    "/",
				Code:    CodeInvalidOperation,
				Message: i18n.T(CodeInvalidOperation, nil),
				Hint:    fmt.Sprintf("unmatched value: %v (%T)", v, v),
			}}
		}
		return out, nil
	})
}
