package util_test

import (
	"errors"
	"testing"

	"github.com/ghettovoice/gouri/internal/util"
)

func TestLCase(t *testing.T) {
	t.Parallel()

	if got, want := util.LCase("HTTPs"), "https"; got != want {
		t.Errorf("util.LCase(\"HTTPs\") = %q, want %q", got, want)
	}
}

func TestEqFold(t *testing.T) {
	t.Parallel()

	cases := []struct {
		s1, s2 string
		want   bool
	}{
		{"", "", true},
		{"Example.COM", "example.com", true},
		{"example.com", "example.org", false},
	}

	for _, c := range cases {
		if got := util.EqFold(c.s1, c.s2); got != c.want {
			t.Errorf("util.EqFold(%q, %q) = %v, want %v", c.s1, c.s2, got, c.want)
		}
	}
}

func TestStringBuilderPool(t *testing.T) {
	t.Parallel()

	sb := util.GetStringBuilder()
	sb.WriteString("http://example.com")
	if got, want := sb.String(), "http://example.com"; got != want {
		t.Errorf("sb.String() = %q, want %q", got, want)
	}
	util.FreeStringBuilder(sb)
	if got := sb.Len(); got != 0 {
		t.Errorf("sb.Len() after free = %d, want 0", got)
	}
}

func TestMust2(t *testing.T) {
	t.Parallel()

	if got := util.Must2("ok", nil); got != "ok" {
		t.Errorf("util.Must2(\"ok\", nil) = %q, want \"ok\"", got)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("util.Must2(\"\", err) did not panic")
		}
	}()
	util.Must2("", errors.New("boom"))
}
