// Package codec supplies decoders for the BSON scalar types. They are the
// leaves that derive composes record and union decoders from, and can also be
// used standalone via oolong.Decoder.
package codec

import (
	oolong "github.com/WojciechMazur/oolong"
	"github.com/WojciechMazur/oolong/i18n"
)

// String decodes a BSON string.
func String() oolong.Decoder[string] {
	return oolong.DecoderFunc[string](func(v oolong.Value) (string, error) {
		if s, ok := v.(string); ok {
			return s, nil
		}
		return "", typeMismatch("string", v)
	})
}

// Bool decodes a BSON boolean.
func Bool() oolong.Decoder[bool] {
	return oolong.DecoderFunc[bool](func(v oolong.Value) (bool, error) {
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return false, typeMismatch("bool", v)
	})
}

// Int32 decodes a BSON int32.
func Int32() oolong.Decoder[int32] {
	return oolong.DecoderFunc[int32](func(v oolong.Value) (int32, error) {
		if n, ok := v.(int32); ok {
			return n, nil
		}
		return 0, typeMismatch("int32", v)
	})
}

// Int64 decodes a BSON int64, widening int32 losslessly. Hand-built documents
// may carry Go ints; those are accepted as well.
func Int64() oolong.Decoder[int64] {
	return oolong.DecoderFunc[int64](func(v oolong.Value) (int64, error) {
		switch n := v.(type) {
		case int64:
			return n, nil
		case int32:
			return int64(n), nil
		case int:
			return int64(n), nil
		}
		return 0, typeMismatch("int64", v)
	})
}

// Double decodes a BSON double, widening int32 and int64.
func Double() oolong.Decoder[float64] {
	return oolong.DecoderFunc[float64](func(v oolong.Value) (float64, error) {
		switch n := v.(type) {
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		case int32:
			return float64(n), nil
		case int:
			return float64(n), nil
		}
		return 0, typeMismatch("double", v)
	})
}

func typeMismatch(want string, v oolong.Value) oolong.Issues {
	return oolong.Issues{oolong.Issue{
		Path:    "/",
		Code:    oolong.CodeInvalidType,
		Message: i18n.T(oolong.CodeInvalidType, map[string]string{"expected": want}),
		Hint:    "expected " + want,
	}}
}
