package derive

import (
	"fmt"
	"reflect"

	oolong "github.com/WojciechMazur/oolong"
	"github.com/WojciechMazur/oolong/i18n"
)

// anyDecoder is the type-erased unit of derivation. The decode function is
// assigned when a derivation completes; self-referential shapes observe the
// pointer before assignment and resolve through it lazily at decode time.
type anyDecoder struct {
	decode func(oolong.Value) (any, error)
}

func (ad *anyDecoder) decodeAny(v oolong.Value) (any, error) { return ad.decode(v) }

// Derive builds a decoder for T from its registered shape (or returns T's
// registered leaf decoder), recursively deriving decoders for every
// constituent type. Derivations are memoized per type: deriving T twice
// yields the same decoder, and recursive shapes terminate.
func Derive[T any](r *Registry) (oolong.Decoder[T], error) {
	rt := TypeOf[T]()
	r.mu.Lock()
	var entered []reflect.Type
	ad, err := r.deriveLocked(rt, &entered)
	if err != nil {
		// Roll back every memo entry added during the failed attempt, not
		// just rt: a sibling completed mid-derivation may hold a pointer to
		// an abandoned placeholder and must be rebuilt from scratch on the
		// next attempt.
		for _, et := range entered {
			delete(r.derived, et)
		}
	}
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return typedDecoder[T]{ad: ad, rt: rt}, nil
}

// MustDerive is Derive, panicking on derivation failure. Intended for
// initialization paths where a missing registration is a programming error.
func MustDerive[T any](r *Registry) oolong.Decoder[T] {
	d, err := Derive[T](r)
	if err != nil {
		panic(err)
	}
	return d
}

// typedDecoder narrows the erased derivation result back to T.
type typedDecoder[T any] struct {
	ad *anyDecoder
	rt reflect.Type
}

func (d typedDecoder[T]) DecodeValue(v oolong.Value) (T, error) {
	var zero T
	out, err := d.ad.decodeAny(v)
	if err != nil {
		return zero, err
	}
	if out == nil {
		// Nullable decoders may produce an untyped nil; the zero T (a nil
		// pointer or interface) is its typed counterpart.
		return zero, nil
	}
	t, ok := out.(T)
	if !ok {
		return zero, oolong.Issues{oolong.Issue{
			Path:    "/",
			Code:    oolong.CodeInvalidType,
			Message: i18n.T(oolong.CodeInvalidType, nil),
			Hint:    fmt.Sprintf("decoder for %s produced %T", d.rt, out),
		}}
	}
	return t, nil
}

// deriveLocked resolves or builds the decoder for rt, recording every memo
// entry it adds in entered so a failed top-level derivation can undo all of
// them. Callers hold r.mu.
func (r *Registry) deriveLocked(rt reflect.Type, entered *[]reflect.Type) (*anyDecoder, error) {
	if ad, ok := r.derived[rt]; ok {
		return ad, nil
	}
	if fn, ok := r.decoders[rt]; ok {
		ad := &anyDecoder{decode: fn}
		r.derived[rt] = ad
		*entered = append(*entered, rt)
		return ad, nil
	}

	// Enter a placeholder before recursing so self-referential shapes find
	// it instead of deriving forever.
	ad := &anyDecoder{}
	r.derived[rt] = ad
	*entered = append(*entered, rt)

	var fn func(oolong.Value) (any, error)
	var err error
	switch {
	case r.hasRecord(rt):
		fn, err = r.buildRecord(rt, r.records[rt], entered)
	case r.hasUnion(rt):
		fn, err = r.buildUnion(rt, r.unions[rt], entered)
	default:
		err = fmt.Errorf("derive: no decoder or shape registered for %s", rt)
	}
	if err != nil {
		// Cleanup happens in Derive, which rolls back the whole attempt.
		return nil, err
	}
	ad.decode = fn
	return ad, nil
}

func (r *Registry) hasRecord(rt reflect.Type) bool { _, ok := r.records[rt]; return ok }
func (r *Registry) hasUnion(rt reflect.Type) bool  { _, ok := r.unions[rt]; return ok }
