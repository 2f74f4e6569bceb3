package model

import (
	"errors"
	"testing"
)

func TestParseNewCycleRequestValid(t *testing.T) {
	for _, minutes := range []string{"5", "25", "60", " 30 "} {
		req, err := ParseNewCycleRequest("  Projeto 2 ", minutes)
		if err != nil {
			t.Fatalf("minutes %q: unexpected error: %v", minutes, err)
		}
		if req.Task != "Projeto 2" {
			t.Fatalf("expected trimmed task, got %q", req.Task)
		}
		if err := req.Validate(); err != nil {
			t.Fatalf("parsed request should validate: %v", err)
		}
	}
}

func TestParseNewCycleRequestFieldErrors(t *testing.T) {
	cases := []struct {
		name    string
		task    string
		minutes string
		field   string
		message string
	}{
		{"empty task", "", "25", FieldTask, "task required"},
		{"blank task", "   ", "25", FieldTask, "task required"},
		{"below minimum", "write", "3", FieldMinutesAmount, "minutes must be at least 5"},
		{"above maximum", "write", "61", FieldMinutesAmount, "minutes must be at most 60"},
		{"not a number", "write", "abc", FieldMinutesAmount, "minutes must be a number"},
		{"empty minutes", "write", "", FieldMinutesAmount, "minutes must be a number"},
		{"fractional", "write", "12.5", FieldMinutesAmount, "minutes must be a number"},
	}
	for _, tc := range cases {
		_, err := ParseNewCycleRequest(tc.task, tc.minutes)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("%s: expected ErrInvalidRequest, got %v", tc.name, err)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected *ValidationError, got %T", tc.name, err)
		}
		fe, ok := verr.Field(tc.field)
		if !ok || fe.Message != tc.message {
			t.Fatalf("%s: expected %s=%q, got %+v", tc.name, tc.field, tc.message, verr.Fields)
		}
	}
}

func TestParseNewCycleRequestCollectsAllFields(t *testing.T) {
	_, err := ParseNewCycleRequest("", "0")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected both fields to fail, got %+v", verr.Fields)
	}
	if verr.Error() != "task: task required; minutesAmount: minutes must be at least 5" {
		t.Fatalf("unexpected message: %q", verr.Error())
	}
}

func TestStepMinutes(t *testing.T) {
	cases := []struct {
		current, delta, want int
	}{
		{0, 1, 5},
		{0, -1, 5},
		{5, 1, 10},
		{5, -1, 5},
		{55, 1, 60},
		{60, 1, 60},
		{25, -1, 20},
		{90, -1, 60},
	}
	for _, tc := range cases {
		if got := StepMinutes(tc.current, tc.delta); got != tc.want {
			t.Fatalf("StepMinutes(%d, %d) = %d, want %d", tc.current, tc.delta, got, tc.want)
		}
	}
}
