package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSet_MarshalsSorted(t *testing.T) {
	data, err := json.Marshal(NewSet("founder", "dev", "admin"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["admin","dev","founder"]` {
		t.Fatalf("unexpected encoding: %s", data)
	}
}

func TestSet_UnmarshalForms(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{in: `["b","a","b"]`, want: []string{"a", "b"}},
		{in: `{"10.0.0.1": true, "10.0.0.2": false}`, want: []string{"10.0.0.1"}},
		{in: `null`, want: []string{}},
		{in: `[]`, want: []string{}},
	}

	for _, tc := range cases {
		var s Set
		if err := json.Unmarshal([]byte(tc.in), &s); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if got := s.Sorted(); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("unmarshal %s = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSet_UnmarshalRejectsScalars(t *testing.T) {
	var s Set
	if err := json.Unmarshal([]byte(`42`), &s); err == nil {
		t.Fatalf("expected error for scalar input")
	}
}

func TestSet_AddIsIdempotent(t *testing.T) {
	s := NewSet()
	if !s.Add("dev") {
		t.Fatalf("first Add should report insertion")
	}
	if s.Add("dev") {
		t.Fatalf("second Add should report no change")
	}
	if len(s) != 1 || !s.Has("dev") {
		t.Fatalf("unexpected set: %v", s.Sorted())
	}
}

func TestSet_CloneIsIndependent(t *testing.T) {
	s := NewSet("a")
	c := s.Clone()
	c.Add("b")
	if s.Has("b") {
		t.Fatalf("clone shares storage with original")
	}
}
