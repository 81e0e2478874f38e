package executor

import (
	"strings"
	"testing"
)

// FuzzBuildQueryString checks the flattening invariants for arbitrary
// pair content: no trailing separator, and every pair present verbatim.
func FuzzBuildQueryString(f *testing.F) {
	f.Add("a", "1", "b", "2")
	f.Add("", "", "", "")
	f.Add("key with space", "value&with=amp", "x", "")

	f.Fuzz(func(t *testing.T, n1, v1, n2, v2 string) {
		records := []Values{
			{{Name: n1, Value: v1}},
			{{Name: n2, Value: v2}},
		}
		got := BuildQueryString(records)
		if strings.HasSuffix(got, "&") && !strings.HasSuffix(v2, "&") {
			t.Fatalf("unexpected trailing separator: %q", got)
		}
		if !strings.Contains(got, n1+"="+v1) {
			t.Fatalf("first pair missing from %q", got)
		}
		if !strings.Contains(got, n2+"="+v2) {
			t.Fatalf("second pair missing from %q", got)
		}
	})
}
