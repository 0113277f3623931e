package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/akolanti/CaptionSpeech/internal/adapter"
	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/domain/pipelineErrors"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "err", err)
	}
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.FromContext(ctx).Warn("context error", "err", ctx.Err())
		return false
	}
	return true
}

func traceID(ctx context.Context) string {
	trace, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	return trace
}

// WriteErrorResponse writes the {"error","kind","trace_id"} body every failure shares.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, httpCode int, kind string, message string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(message, kind, traceID(r.Context())))
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := pipelineErrors.HTTPStatus(err)
	if code >= http.StatusInternalServerError {
		logRH.FromContext(r.Context()).Error("Request failed", "path", r.URL.Path, "err", err)
	}
	writeJsonResponse(w, code, adapter.FromError(err, traceID(r.Context())))
}
