package json_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson"

	oolong "github.com/WojciechMazur/oolong"
	srcjson "github.com/WojciechMazur/oolong/source/json"
)

func TestBytes_PreservesKeyOrder(t *testing.T) {
	v, err := srcjson.Bytes([]byte(`{"b": 1, "a": {"x": [1, 2.5, "s", true, null]}}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := bson.D{
		{Key: "b", Value: int64(1)},
		{Key: "a", Value: bson.D{
			{Key: "x", Value: bson.A{int64(1), 2.5, "s", true, nil}},
		}},
	}
	if diff := cmp.Diff(oolong.Value(want), v); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBytes_Scalars(t *testing.T) {
	cases := []struct {
		input string
		want  oolong.Value
	}{
		{`"hi"`, "hi"},
		{`7`, int64(7)},
		{`7.25`, 7.25},
		{`true`, true},
		{`null`, nil},
		{`[]`, bson.A{}},
		{`{}`, bson.D{}},
	}
	for _, tc := range cases {
		got, err := srcjson.Bytes([]byte(tc.input))
		if err != nil {
			t.Fatalf("%s: unexpected err: %v", tc.input, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("%s mismatch:\n%s", tc.input, diff)
		}
	}
}

func TestBytes_MalformedInputFailsWithParseError(t *testing.T) {
	_, err := srcjson.Bytes([]byte(`{"a":`))
	iss, ok := oolong.AsIssues(err)
	if !ok || iss[0].Code != oolong.CodeParseError {
		t.Fatalf("expected parse_error, got: %v", err)
	}
}

func TestBytes_TrailingDataFailsWithParseError(t *testing.T) {
	for _, input := range []string{
		`{"a": 1} trailing`,
		`{"a": 1} !!!garbage!!!`,
		`1 2`,
		`null null`,
	} {
		_, err := srcjson.Bytes([]byte(input))
		iss, ok := oolong.AsIssues(err)
		if !ok || iss[0].Code != oolong.CodeParseError {
			t.Fatalf("%s: expected parse_error, got: %v", input, err)
		}
	}
}
