package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeStart     Type = "start"
	TypeInterrupt Type = "interrupt"
	TypeShow      Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// StartArgs carries raw values; they are validated by the cycle schema, not
// by the parser.
type StartArgs struct {
	Minutes string
	Task    string
}

type InterruptArgs struct{}

type ShowArgs struct {
	Subject string
}

const (
	ShowCycles = "cycles"
	ShowActive = "active"
)

type Command struct {
	Type      Type
	Raw       string
	Start     *StartArgs
	Interrupt *InterruptArgs
	Show      *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeStart:
		return parseStart(input, args)
	case TypeInterrupt, "stop":
		return parseInterrupt(input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseStart(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "start requires minutes and a task"}
	}
	task := strings.TrimSpace(strings.Join(args[1:], " "))
	return Command{Type: TypeStart, Raw: raw, Start: &StartArgs{Minutes: args[0], Task: task}}, nil
}

func parseInterrupt(raw string, args []string) (Command, error) {
	if len(args) > 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "interrupt takes no arguments"}
	}
	return Command{Type: TypeInterrupt, Raw: raw, Interrupt: &InterruptArgs{}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	switch subject {
	case ShowCycles, "history":
		subject = ShowCycles
	case ShowActive:
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("show supports cycles or active, got %s", subject)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
}
