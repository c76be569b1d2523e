package data

import (
	apperrors "github.com/nardonidigital/agency-api/internal/errors"
)

// mapWriteErr funnels a write error through the shared database error
// classifier, substituting the repository's sentinels for the not-found and
// conflict categories so callers keep matching with errors.Is. A nil
// sentinel leaves that category classified. Other recognized categories
// (foreign key, check, not-null, timeout) surface as *apperrors.AppError for
// the HTTP layer to translate.
func mapWriteErr(err error, notFound, conflict error) error {
	if err == nil {
		return nil
	}
	mapped := apperrors.MapDBError(err)
	switch {
	case notFound != nil && apperrors.IsCode(mapped, apperrors.ErrCodeNotFound):
		return notFound
	case conflict != nil && apperrors.IsCode(mapped, apperrors.ErrCodeConflict):
		return conflict
	}
	return mapped
}
