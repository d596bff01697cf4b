package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeSkills(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"json array", `["a","b"]`, []string{"a", "b"}},
		{"stringified array", `"[\"a\",\"b\"]"`, []string{"a", "b"}},
		{"plain string", `"solo"`, []string{"solo"}},
		{"truncated list string", `"[bad json"`, []string{}},
		{"malformed list string", `"[1,2]"`, []string{}},
		{"number", `123`, []string{}},
		{"object", `{"a":1}`, []string{}},
		{"null", `null`, []string{}},
		{"empty array", `[]`, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeSkills(json.RawMessage(tc.raw))
			if got == nil {
				t.Fatalf("NormalizeSkills returned nil, want %v", tc.want)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("NormalizeSkills(%s) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalizeSkills_Absent(t *testing.T) {
	if got := NormalizeSkills(nil); len(got) != 0 {
		t.Fatalf("expected empty slice for absent value, got %v", got)
	}
}
