package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// validate is shared by all handlers; it reads the validate struct tags on
// the request models
var validate = validator.New()

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// DecodeAndValidate decodes the request body into req and runs struct
// validation. On failure it writes the error response and returns false.
func (h *BaseHandler) DecodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := validate.Struct(req); err != nil {
		h.RespondError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}

	return true
}

// validationMessage flattens validator errors into a single readable message
func validationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "invalid request body"
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s failed on '%s'", fieldError.Field(), fieldError.Tag()))
	}
	return "validation failed: " + strings.Join(fields, ", ")
}
