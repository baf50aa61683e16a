package services

import "testing"

func TestAccessors(t *testing.T) {
	data := []byte(`{"s":"x","n":3,"f":2.9,"b":true,"null":null,"obj":{"s":"y"},"arr":[{"s":"a"},null,1,{"s":"b"}],"wrong":"7"}`)

	t.Run("str", func(t *testing.T) {
		if got := str(data, "s"); got != "x" {
			t.Errorf("expected x, got %q", got)
		}
		if got := str(data, "obj", "s"); got != "y" {
			t.Errorf("expected nested y, got %q", got)
		}
		for _, key := range []string{"missing", "null", "n", "obj"} {
			if got := str(data, key); got != "" {
				t.Errorf("%s: expected empty string, got %q", key, got)
			}
		}
	})

	t.Run("optStr", func(t *testing.T) {
		if got := optStr(data, "s"); got == nil || *got != "x" {
			t.Errorf("expected pointer to x, got %v", got)
		}
		if got := optStr(data, "null"); got != nil {
			t.Errorf("expected nil for null, got %v", *got)
		}
		if got := optStr(data, "missing"); got != nil {
			t.Errorf("expected nil for missing, got %v", *got)
		}
	})

	t.Run("num", func(t *testing.T) {
		if got := num(data, "n"); got != 3 {
			t.Errorf("expected 3, got %d", got)
		}
		if got := num(data, "f"); got != 2 {
			t.Errorf("expected truncated 2, got %d", got)
		}
		if got := num(data, "wrong"); got != 0 {
			t.Errorf("expected 0 for a string, got %d", got)
		}
		if got := numOr(data, 42, "missing"); got != 42 {
			t.Errorf("expected fallback 42, got %d", got)
		}
		if got := numOr(data, 42, "null"); got != 42 {
			t.Errorf("expected fallback for null, got %d", got)
		}
	})

	t.Run("bool", func(t *testing.T) {
		if !boolean(data, "b") {
			t.Error("expected true")
		}
		if boolean(data, "s") {
			t.Error("expected false for a string")
		}
		if got := optBool(data, "null"); got != nil {
			t.Errorf("expected nil for null, got %v", *got)
		}
		if got := optBool(data, "b"); got == nil || !*got {
			t.Error("expected pointer to true")
		}
	})

	t.Run("objects", func(t *testing.T) {
		var seen []string
		objects(data, func(item []byte) { seen = append(seen, str(item, "s")) }, "arr")
		if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
			t.Errorf("expected [a b], got %v", seen)
		}

		calls := 0
		objects(data, func([]byte) { calls++ }, "obj")
		objects(data, func([]byte) { calls++ }, "missing")
		objects([]byte("null"), func([]byte) { calls++ }, "items")
		if calls != 0 {
			t.Errorf("expected no calls for non-arrays, got %d", calls)
		}
	})
}
