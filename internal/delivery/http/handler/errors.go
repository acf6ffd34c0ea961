package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"hospital-management-system/internal/usecase"
	"hospital-management-system/pkg/response"
	"hospital-management-system/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var errorStatus = []struct {
	category error
	status   int
}{
	{usecase.ErrNotFound, http.StatusNotFound},
	{usecase.ErrValidationConflict, http.StatusConflict},
	{usecase.ErrInvalidEnumValue, http.StatusBadRequest},
	{usecase.ErrInvalidInput, http.StatusBadRequest},
	{usecase.ErrForbidden, http.StatusForbidden},
	{usecase.ErrUnauthenticated, http.StatusUnauthorized},
	{usecase.ErrTooManyAttempts, http.StatusTooManyRequests},
}

// writeError answers with the status of err's category. Store failures and
// anything uncategorised become a 500 carrying only fallback, so driver
// messages never reach the client.
func writeError(w http.ResponseWriter, err error, fallback string) {
	for _, e := range errorStatus {
		if errors.Is(err, e.category) {
			response.Error(w, e.status, strings.TrimPrefix(err.Error(), e.category.Error()+": "), nil)
			return
		}
	}
	response.InternalServerError(w, fallback)
}

// decodeAndValidate reads a JSON body into req and runs its validate tags.
// It writes the 400 itself and reports false when the request is unusable.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}
