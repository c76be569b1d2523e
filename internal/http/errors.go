package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/nardonidigital/agency-api/internal/errors"
)

// appErrorStatus maps classified application error codes to HTTP statuses.
func appErrorStatus(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict, apperrors.ErrCodeForeignKey:
		return http.StatusConflict
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError translates a service-layer error into a response.
// Classified errors respond with their category's status and user-facing
// message only, never the underlying cause. Everything else is logged under
// logMsg and reported as a generic 500 carrying publicMsg.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, logMsg, publicMsg string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != apperrors.ErrCodeInternal {
		WriteError(w, ErrorParams{
			Code:    appErrorStatus(appErr.Code),
			ErrCode: string(appErr.Code),
			Err:     errors.New(appErr.Message),
		})
		return
	}
	logger.ErrorContext(r.Context(), logMsg, "error", err)
	WriteError(w, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: "internal_error",
		Err:     errors.New(publicMsg),
	})
}
