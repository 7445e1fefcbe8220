package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/catkeeper/internal/common"
	"github.com/dmitrijs2005/catkeeper/internal/server/models"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(context.Background(), "error encoding response", "error", err.Error())
	}
}

// writeError is the single boundary between service errors and transport
// statuses. Credential lookup failures are reported with status 200 so the
// status code alone does not reveal whether an account exists.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int

	switch {
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrMissingSideInput),
		errors.Is(err, common.ErrPrincipalMissing),
		errors.Is(err, common.ErrMutationFailed):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrCredentialLookup):
		status = http.StatusOK
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		status = http.StatusUnauthorized
	default:
		s.logger.Error(r.Context(), "unhandled error", "error", err.Error())
		s.writeJSON(w, http.StatusInternalServerError, models.MessageResponse{Message: "internal server error"})
		return
	}

	s.writeJSON(w, status, models.MessageResponse{Message: err.Error()})
}
