package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalis-hms/clinic_ledger_app/internal/apperrors"
)

// statusForError maps domain sentinels to HTTP status codes. Anything
// unmatched is treated as an internal error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrCurrencyMismatch),
		errors.Is(err, apperrors.ErrNegativeResult),
		errors.Is(err, apperrors.ErrInvalidPeriod),
		errors.Is(err, apperrors.ErrFuturePaymentDate):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrIllegalTransition),
		errors.Is(err, apperrors.ErrAlreadyClosed),
		errors.Is(err, apperrors.ErrRegisterAlreadyOpen),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the mapped status for err. Client errors echo the
// wrapped error message, internal errors only log it.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, internalMsg string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: internalMsg})
		return
	}
	logger.Warn(internalMsg, slog.String("error", err.Error()))
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
