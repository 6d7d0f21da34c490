// Package tools exposes roster, pokédex and clock operations as named tools
// with JSON-schema parameters, the surface an agent runtime calls.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/pokeagent/pokeagent/internal/validation"
)

// Tool describes a callable tool.
type Tool struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

// Result is what a tool call returns to the agent. Failed calls set IsError
// and Code instead of surfacing a transport error.
type Result struct {
	Content string `json:"content"`
	Data    any    `json:"data,omitempty"`
	IsError bool   `json:"isError"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Handler executes a tool with JSON-encoded arguments.
type Handler func(ctx context.Context, args json.RawMessage) (Result, error)

type entry struct {
	tool    Tool
	handler Handler
}

// Registry holds the tools available to the agent. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	entries   map[string]entry
	validator *validation.Validator
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:   make(map[string]entry),
		validator: validation.New(),
	}
}

// Register adds a tool. Returns ErrAlreadyExists if the name is taken.
func (r *Registry) Register(tool Tool, handler Handler) error {
	if tool.Name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[tool.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, tool.Name)
	}
	r.entries[tool.Name] = entry{tool: tool, handler: handler}
	return nil
}

// Get returns the definition of a registered tool.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	return e.tool, ok
}

// List returns every tool definition ordered by name.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Tool, 0, len(r.entries))
	for _, e := range r.entries {
		list = append(list, e.tool)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Execute runs the named tool. Only an unknown name is returned as an error;
// every failure inside the tool becomes a Result with IsError set.
func (r *Registry) Execute(ctx context.Context, name string, args json.RawMessage) (Result, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	start := time.Now()
	slog.Debug("tool call started", "tool", name)

	res, err := e.handler(ctx, args)
	if err != nil {
		res = ErrorResult(err)
		if res.Code == CodeInternal || res.Code == CodeStore || res.Code == CodeUpstream {
			slog.Error("tool call failed", "tool", name, "code", res.Code, "error", err)
		} else {
			slog.Warn("tool call rejected", "tool", name, "code", res.Code, "error", err)
		}
		return res, nil
	}

	slog.Debug("tool call finished", "tool", name, "duration", time.Since(start))
	return res, nil
}

// Add registers fn under name. Parameters are reflected from A, and incoming
// arguments are decoded into A and validated against its struct tags before
// fn runs.
func Add[A any](r *Registry, name, description string, fn func(ctx context.Context, args A) (Result, error)) error {
	tool := Tool{
		Name:        name,
		Description: description,
		Parameters:  Schema[A](),
	}
	return r.Register(tool, bind(r.validator, fn))
}

func bind[A any](v *validation.Validator, fn func(context.Context, A) (Result, error)) Handler {
	return func(ctx context.Context, raw json.RawMessage) (Result, error) {
		var args A
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			if err := json.Unmarshal(trimmed, &args); err != nil {
				return Result{}, &ArgumentsError{Err: err}
			}
		}
		if errs := v.Struct(args); len(errs) > 0 {
			return Result{}, &ArgumentsError{Fields: errs}
		}
		return fn(ctx, args)
	}
}

// Schema reflects the JSON schema of an arguments struct.
func Schema[A any]() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	s := r.Reflect(new(A))
	s.Version = ""
	s.ID = ""
	return s
}

// messager is implemented by roster results.
type messager interface {
	Message() string
}
