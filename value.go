package oolong

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Value is one node of a BSON-like document tree: a Document, an Array, a
// scalar (string, int32, int64, float64, bool, primitive.DateTime,
// primitive.ObjectID, primitive.Binary, ...) or null. Trees come from the
// bson library (bson.Unmarshal into a bson.D), from the source/ drivers, or
// from hand-written literals.
type Value = any

// Document is an ordered mapping from string keys to values. Keys are unique.
type Document = bson.D

// Array is an ordered sequence of values.
type Array = bson.A

// AsDocument views v as a Document when it is one.
func AsDocument(v Value) (Document, bool) {
	switch d := v.(type) {
	case bson.D:
		return d, true
	case *bson.D:
		if d == nil {
			return nil, false
		}
		return *d, true
	}
	return nil, false
}

// AsArray views v as an Array when it is one.
func AsArray(v Value) (Array, bool) {
	switch a := v.(type) {
	case bson.A:
		return a, true
	case *bson.A:
		if a == nil {
			return nil, false
		}
		return *a, true
	}
	return nil, false
}

// Lookup returns the value stored under key, scanning pairs in document
// order.
func Lookup(d Document, key string) (Value, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// IsNull reports whether v represents BSON null. Tree decoding maps null to
// nil; primitive.Null appears in documents built by hand.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	switch v.(type) {
	case primitive.Null, *primitive.Null:
		return true
	}
	return false
}
