package http

import (
	"errors"
	"net/http"

	"github.com/apmod1/password-manager/internal/logger"
	"github.com/apmod1/password-manager/internal/service"
	"github.com/apmod1/password-manager/internal/store"
	"github.com/apmod1/password-manager/internal/utils"
	"github.com/apmod1/password-manager/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:  http.StatusBadRequest,
	service.ErrSessionExpired:       http.StatusBadRequest,
	service.ErrInvalidCode:          http.StatusBadRequest,
	service.ErrTotpNotVerified:      http.StatusForbidden,
	service.ErrIntegrityCheckFailed: http.StatusBadRequest,
	service.ErrHMACKeyUnconfigured:  http.StatusBadRequest,
	service.ErrInvalidCredentials:   http.StatusUnauthorized,
	service.ErrInvalidSession:       http.StatusUnauthorized,
	service.ErrNotFound:             http.StatusNotFound,

	store.ErrFingerprintAlreadyExists: http.StatusConflict,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError renders the uniform JSON error envelope. Internal failures are
// masked behind a generic message so storage details never leak.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("request failed with internal error")
		message = http.StatusText(http.StatusInternalServerError)
	} else {
		log.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	if _, writeErr := utils.WriteJSON(w, models.ErrorResponse{Error: message}, status); writeErr != nil {
		log.Err(writeErr).Msg("writing error response failed")
	}
}
