package oolong

// Package oolong provides:
//
// - A type-safe Decoder[T] contract over BSON-like document values (DecodeValue/Map/TryMap)
// - A stable error model via Issues (path, code, message)
// - Manual decoder constructors (OfDocument/OfArray/Partial) that capture faults
// - Shape-driven derivation of record and union decoders under derive/
//
// Design policy:
// - Keep only public APIs in the root package; place derivation under derive/,
//   leaf decoders under codec/, and value ingestion under source/.
// - Decoders are immutable after construction and safe for concurrent use.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	reg := derive.NewRegistry()
//	derive.Register(reg, codec.String())
//	_ = derive.RegisterRecord(reg, newPerson, personFields...)
//	dec := derive.MustDerive[Person](reg)
//	p, err := dec.DecodeValue(doc)
