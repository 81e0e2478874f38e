package stepsuite

import (
	"context"
	"testing"
)

func TestFacade_StoreRoundTrip(t *testing.T) {
	s := NewStore()
	s.Save("k", "v")
	v, ok := s.Get("k")
	if !ok || v != "v" {
		t.Fatalf("unexpected store value: %v ok=%v", v, ok)
	}
}

func TestFacade_QueryAndHeaderHelpers(t *testing.T) {
	q := BuildQueryString([]Values{{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}})
	if q != "a=1&b=2" {
		t.Fatalf("unexpected query string: %q", q)
	}

	merged := MergeHeaders(HeaderSet{Token: "Bearer t"}.Headers(), []Values{{{Name: "X", Value: "y"}}})
	if merged["Authorization"] != "Bearer t" || merged["X"] != "y" {
		t.Fatalf("unexpected merge: %v", merged)
	}
}

func TestFacade_CustomAuthProvider(t *testing.T) {
	RegisterAuthProvider("facade-test", func(spec map[string]interface{}) (AuthMethod, error) {
		return fixedMethod{}, nil
	})
	v, err := AcquireAuth(context.Background(), "facade-test", nil)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if v != "Bearer fixed" {
		t.Fatalf("unexpected value: %q", v)
	}
}

type fixedMethod struct{}

func (fixedMethod) Acquire(_ context.Context) (string, error) { return "Bearer fixed", nil }
