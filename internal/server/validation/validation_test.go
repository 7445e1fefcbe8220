package validation

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/catkeeper/internal/common"
)

func TestErr_NilWhenAllRulesPass(t *testing.T) {
	var r Result
	r.MinLength("user_name", "abc", 3, "Invalid username")
	r.Match("email", "a@b.fi", EmailPattern, "Invalid email")
	r.MinLength("password", "12345", 5, "Invalid password")

	if err := r.Err(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestErr_AggregatesAllViolations(t *testing.T) {
	var r Result
	r.MinLength("user_name", "ab", 3, "Invalid username")
	r.Match("email", "not-an-email", EmailPattern, "Invalid email")
	r.MinLength("password", "1234", 5, "Invalid password")

	err := r.Err()
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	want := "Invalid username: user_name, Invalid email: email, Invalid password: password"
	if err.Error() != want {
		t.Fatalf("message mismatch:\n got  %q\n want %q", err.Error(), want)
	}
}

func TestMinLength_BoundaryAtThree(t *testing.T) {
	var short Result
	short.MinLength("user_name", "ab", 3, "Invalid username")
	if short.Err() == nil {
		t.Fatalf("length 2 must fail")
	}

	var ok Result
	ok.MinLength("user_name", "abc", 3, "Invalid username")
	if err := ok.Err(); err != nil {
		t.Fatalf("length 3 must pass, got %v", err)
	}
}

func TestRequireAndPositive(t *testing.T) {
	var r Result
	r.Require("cat_name", "", "Invalid cat name")
	r.Positive("weight", 0, "Invalid weight")

	err := r.Err()
	if err == nil || err.Error() != "Invalid cat name: cat_name, Invalid weight: weight" {
		t.Fatalf("unexpected result: %v", err)
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("id", "42")
	if err != nil || id != 42 {
		t.Fatalf("expected 42, got %d, %v", id, err)
	}

	for _, raw := range []string{"abc", "0", "-3", ""} {
		if _, err := ParseID("id", raw); !errors.Is(err, common.ErrValidation) {
			t.Fatalf("raw %q: expected ErrValidation, got %v", raw, err)
		}
	}
}
