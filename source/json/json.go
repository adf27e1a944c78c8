// Package json builds document values from JSON text using goccy/go-json.
// Object key order is preserved, so the resulting tree is a faithful
// oolong.Document (bson.D) and can feed any derived decoder.
package json

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"

	oolong "github.com/WojciechMazur/oolong"
	"github.com/WojciechMazur/oolong/i18n"
)

// Bytes decodes a single JSON value from b into a document value.
func Bytes(b []byte) (oolong.Value, error) {
	return Reader(bytes.NewReader(b))
}

// Reader decodes a single JSON value from r into a document value. The input
// must contain exactly one value; trailing data fails with CodeParseError.
func Reader(r io.Reader) (oolong.Value, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	v, err := readValue(dec)
	if err != nil {
		return nil, parseIssue(err)
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected data after top-level value: %v", tok)
		}
		return nil, parseIssue(err)
	}
	return v, nil
}

func readValue(dec *j.Decoder) (oolong.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *j.Decoder, tok j.Token) (oolong.Value, error) {
	switch t := tok.(type) {
	case j.Delim:
		switch t {
		case '{':
			return readDocument(dec)
		case '[':
			return readArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return t, nil
	case j.Number:
		// Integral numbers become int64, everything else double; this
		// matches how the bson tree represents JSON numbers.
		if n, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return n, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	case bool:
		return t, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("unexpected token %v (%T)", tok, tok)
}

func readDocument(dec *j.Decoder) (oolong.Document, error) {
	doc := bson.D{}
	for dec.More() {
		ktok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := ktok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v (%T)", ktok, ktok)
		}
		val, err := readValue(dec)
		if err != nil {
			return nil, err
		}
		doc = append(doc, bson.E{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return doc, nil
}

func readArray(dec *j.Decoder) (oolong.Array, error) {
	arr := bson.A{}
	for dec.More() {
		val, err := readValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, err
	}
	return arr, nil
}

func parseIssue(err error) oolong.Issues {
	return oolong.Issues{oolong.Issue{Path: "/", Code: oolong.CodeParseError, Message: i18n.T(oolong.CodeParseError, nil), Cause: err}}
}
