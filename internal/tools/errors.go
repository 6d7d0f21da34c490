package tools

import (
	"errors"
	"fmt"

	"github.com/pokeagent/pokeagent/internal/pokeapi"
	"github.com/pokeagent/pokeagent/internal/roster"
	"github.com/pokeagent/pokeagent/internal/validation"
)

// Sentinel errors for the tool registry.
var (
	ErrNotFound      = errors.New("tool not found")
	ErrAlreadyExists = errors.New("tool already registered")
	ErrEmptyName     = errors.New("tool name is empty")
)

// Result codes reported to the agent.
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeNotFound         = "NOT_FOUND"
	CodeCapacityExceeded = "CAPACITY_EXCEEDED"
	CodeInvalidEvolution = "INVALID_EVOLUTION"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeUpstream         = "UPSTREAM_ERROR"
	CodeStore            = "STORE_ERROR"
	CodeInternal         = "INTERNAL_ERROR"
)

// ArgumentsError is returned when tool arguments cannot be decoded or fail validation.
type ArgumentsError struct {
	Fields []validation.FieldError
	Err    error
}

func (e *ArgumentsError) Error() string {
	if len(e.Fields) > 0 {
		return "invalid arguments: " + validation.Join(e.Fields)
	}
	return fmt.Sprintf("invalid arguments: %v", e.Err)
}

func (e *ArgumentsError) Unwrap() error {
	return e.Err
}

// Code classifies err into a result code.
func Code(err error) string {
	var argErr *ArgumentsError
	switch {
	case errors.As(err, &argErr):
		return CodeInvalidInput
	case errors.Is(err, roster.ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, roster.ErrInvalidInput), errors.Is(err, pokeapi.ErrInvalidName):
		return CodeInvalidInput
	case errors.Is(err, roster.ErrCapacityExceeded):
		return CodeCapacityExceeded
	case errors.Is(err, roster.ErrInvalidEvolution):
		return CodeInvalidEvolution
	case errors.Is(err, roster.ErrTrainerNotFound),
		errors.Is(err, roster.ErrMemberNotFound),
		errors.Is(err, roster.ErrSpeciesNotFound),
		errors.Is(err, pokeapi.ErrNotFound),
		errors.Is(err, pokeapi.ErrEntryNotFound):
		return CodeNotFound
	case errors.Is(err, roster.ErrUpstream), errors.Is(err, pokeapi.ErrUpstream):
		return CodeUpstream
	case errors.Is(err, roster.ErrStore):
		return CodeStore
	default:
		return CodeInternal
	}
}

// ErrorResult converts err into a failed tool result.
func ErrorResult(err error) Result {
	res := Result{
		Content: err.Error(),
		IsError: true,
		Code:    Code(err),
	}
	var argErr *ArgumentsError
	if errors.As(err, &argErr) && len(argErr.Fields) > 0 {
		res.Details = argErr.Fields
	}
	return res
}
