package utils

import (
	"reflect"
	"testing"
)

func TestUniqKeepsFirstOccurrence(t *testing.T) {
	got := Uniq([]string{"b", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Uniq = %v, want %v", got, want)
	}
}

func TestUniqEmpty(t *testing.T) {
	if got := Uniq(nil); len(got) != 0 {
		t.Errorf("Uniq(nil) = %v, want empty", got)
	}
}

func TestToSentence(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b"}, "a and b"},
		{[]string{"a", "b", "c"}, "a, b, and c"},
		{[]string{"a", "b", "c", "d"}, "a, b, c, and d"},
	}
	for _, c := range cases {
		if got := ToSentence(c.in); got != c.want {
			t.Errorf("ToSentence(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
