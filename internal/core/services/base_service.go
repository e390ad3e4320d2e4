package services

import (
	"errors"

	"github.com/bahadricoz/shift/internal/apperrors"
)

// retryReadOnce retries an idempotent read exactly once when the storage
// gateway reports an I/O failure. Writes are never retried: a duplicated
// side effect is worse than a surfaced error.
func retryReadOnce[T any](read func() (T, error)) (T, error) {
	result, err := read()
	if err != nil && errors.Is(err, apperrors.ErrStorage) {
		return read()
	}
	return result, err
}
