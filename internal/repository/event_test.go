package repository

import (
	"testing"
)

func TestNullableString(t *testing.T) {
	if got := nullableString(""); got != nil {
		t.Errorf("nullableString(\"\") = %v, want nil", got)
	}

	got := nullableString("value")
	if got == nil || *got != "value" {
		t.Errorf("nullableString(value) = %v, want pointer to value", got)
	}
}

func TestDerefString(t *testing.T) {
	if got := derefString(nil); got != "" {
		t.Errorf("derefString(nil) = %q, want empty", got)
	}

	s := "value"
	if got := derefString(&s); got != "value" {
		t.Errorf("derefString(&value) = %q, want value", got)
	}
}
