package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokeagent/pokeagent/internal/api/middleware"
	"github.com/pokeagent/pokeagent/internal/api/response"
	"github.com/pokeagent/pokeagent/internal/tools"
)

// maxArgumentsBytes bounds a tool call request body.
const maxArgumentsBytes = 64 << 10

// ToolExecutor lists and runs registered tools.
type ToolExecutor interface {
	List() []tools.Tool
	Get(name string) (tools.Tool, bool)
	Execute(ctx context.Context, name string, args json.RawMessage) (tools.Result, error)
}

// ToolHandler exposes the tool registry over HTTP.
type ToolHandler struct {
	tools ToolExecutor
}

// NewToolHandler creates a new ToolHandler.
func NewToolHandler(t ToolExecutor) *ToolHandler {
	return &ToolHandler{tools: t}
}

// List handles GET /tools.
func (h *ToolHandler) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, h.tools.List(), middleware.GetRequestID(r.Context()))
}

// Get handles GET /tools/{name}.
func (h *ToolHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	name := chi.URLParam(r, "name")

	tool, ok := h.tools.Get(name)
	if !ok {
		response.Err(w, http.StatusNotFound, tools.CodeNotFound, "Tool not found: "+name, requestID)
		return
	}
	response.Success(w, http.StatusOK, tool, requestID)
}

// Call handles POST /tools/{name}. The request body is the JSON arguments
// object. Failures inside the tool are reported in the result with a 200;
// only an unknown tool or an unreadable body changes the status code.
func (h *ToolHandler) Call(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxArgumentsBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Err(w, http.StatusRequestEntityTooLarge, tools.CodeInvalidInput, "Arguments exceed the size limit", requestID)
			return
		}
		response.Err(w, http.StatusBadRequest, tools.CodeInvalidInput, "Failed to read request body", requestID)
		return
	}

	result, err := h.tools.Execute(r.Context(), name, json.RawMessage(body))
	if err != nil {
		if errors.Is(err, tools.ErrNotFound) {
			response.Err(w, http.StatusNotFound, tools.CodeNotFound, "Tool not found: "+name, requestID)
			return
		}
		slog.Error("tool execution failed", "tool", name, "requestId", requestID, "error", err)
		response.Err(w, http.StatusInternalServerError, tools.CodeInternal, "An unexpected error occurred", requestID)
		return
	}

	response.Success(w, http.StatusOK, result, requestID)
}
