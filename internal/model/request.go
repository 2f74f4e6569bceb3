package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	MinMinutes  = 5
	MaxMinutes  = 60
	MinutesStep = 5
)

const (
	FieldTask          = "task"
	FieldMinutesAmount = "minutesAmount"
)

// TaskSuggestions are offered while typing a task name.
var TaskSuggestions = []string{"Projeto 1", "Projeto 2", "Projeto 3", "banana"}

var ErrInvalidRequest = errors.New("model: invalid new cycle request")

type NewCycleRequest struct {
	Task          string
	MinutesAmount int
}

type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field that failed, in form order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

func (e *ValidationError) Field(name string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return FieldError{}, false
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ParseNewCycleRequest validates raw form values. The minutes value must be
// a base-10 integer; an empty value is treated as not a number.
func ParseNewCycleRequest(task, minutesRaw string) (NewCycleRequest, error) {
	verr := &ValidationError{}
	req := NewCycleRequest{Task: strings.TrimSpace(task)}
	if req.Task == "" {
		verr.add(FieldTask, "task required")
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(minutesRaw))
	if err != nil {
		verr.add(FieldMinutesAmount, "minutes must be a number")
	} else {
		req.MinutesAmount = minutes
		checkMinutes(verr, minutes)
	}
	if err := verr.orNil(); err != nil {
		return NewCycleRequest{}, err
	}
	return req, nil
}

func (r NewCycleRequest) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(r.Task) == "" {
		verr.add(FieldTask, "task required")
	}
	checkMinutes(verr, r.MinutesAmount)
	return verr.orNil()
}

func checkMinutes(verr *ValidationError, minutes int) {
	switch {
	case minutes < MinMinutes:
		verr.add(FieldMinutesAmount, fmt.Sprintf("minutes must be at least %d", MinMinutes))
	case minutes > MaxMinutes:
		verr.add(FieldMinutesAmount, fmt.Sprintf("minutes must be at most %d", MaxMinutes))
	}
}

// StepMinutes moves a minutes value by delta steps, clamped to the allowed
// range. Values outside the range snap to the nearest bound first.
func StepMinutes(current, delta int) int {
	if current < MinMinutes {
		if delta > 0 {
			return MinMinutes
		}
		current = MinMinutes
	}
	next := current + delta*MinutesStep
	if next < MinMinutes {
		return MinMinutes
	}
	if next > MaxMinutes {
		return MaxMinutes
	}
	return next
}
