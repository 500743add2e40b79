package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/python-sandbox/internal/apperror"
	"github.com/sakif/python-sandbox/internal/model"
	"github.com/sakif/python-sandbox/internal/sandbox"
)

// Service is the business-layer surface the HTTP handlers need.
type Service interface {
	Run(ctx context.Context, req sandbox.ExecutionRequest) (*sandbox.ExecutionResult, error)
	History(ctx context.Context, sessionID string, limit, offset int) ([]model.Execution, error)
}

// ExecuteHandler serves the execution API.
type ExecuteHandler struct {
	svc    Service
	logger *slog.Logger
}

// NewExecuteHandler creates an ExecuteHandler.
func NewExecuteHandler(svc Service, logger *slog.Logger) *ExecuteHandler {
	return &ExecuteHandler{
		svc:    svc,
		logger: logger,
	}
}

// HandleExecute processes POST /api/execute. Malformed bodies and
// validation failures get a 400; everything past validation — including a
// failed snippet — gets a 200 with the failure expressed in the payload,
// because a failed user snippet is a routine outcome, not a service fault.
func (h *ExecuteHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	var req sandbox.ExecutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid execution request body", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid request body"))
		return
	}

	result, err := h.svc.Run(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleHistory processes GET /api/executions?sessionId=…&limit=…&offset=….
func (h *ExecuteHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	executions, err := h.svc.History(r.Context(), sessionID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, executions)
}
