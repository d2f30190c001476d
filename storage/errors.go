package storage

import (
	"fmt"

	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
)

// ErrKeyNotFound reports that no object exists under key.
func ErrKeyNotFound(key string) *apperrors.AppError {
	return apperrors.NotFound("object", key)
}

// ErrFolderNotFound reports that no folder exists under prefix.
func ErrFolderNotFound(prefix string) *apperrors.AppError {
	return apperrors.NotFound("folder", prefix)
}

// ErrFileTooLarge reports an upload exceeding the configured size limit.
func ErrFileTooLarge(size, limit int64) *apperrors.AppError {
	return apperrors.Validation(
		fmt.Sprintf("file size %d exceeds limit of %d bytes", size, limit))
}

// ErrNotSupported reports that the active backend does not implement op.
// Callers can branch on errors.ErrCodeNotSupported to fall back or skip.
func ErrNotSupported(op, provider string) *apperrors.AppError {
	return apperrors.NotSupported(op, provider)
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.Code == apperrors.ErrCodeNotFound
	}
	return false
}

// IsNotSupported reports whether err carries the NOT_SUPPORTED code.
func IsNotSupported(err error) bool {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.Code == apperrors.ErrCodeNotSupported
	}
	return false
}
