package persistence

import (
	"database/sql"
	"errors"

	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqForeignKeyViolation pq.ErrorCode = "23503"
	pqCheckViolation      pq.ErrorCode = "23514"
)

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == pqUniqueViolation
}

// mapWriteError переводит ошибки драйвера в ошибки приложения.
// Нарушение уникальности становится конфликтом, остальное ошибкой БД.
func mapWriteError(err error, conflictMsg, msg string) error {
	switch pqCode(err) {
	case pqUniqueViolation:
		return apperror.Wrap(err, apperror.ErrCodeConflict, conflictMsg)
	case pqForeignKeyViolation, pqCheckViolation:
		return apperror.Wrap(err, apperror.ErrCodeValidation, msg)
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, msg)
}

// mapReadError возвращает notFound для пустой выборки.
func mapReadError(err error, notFound *apperror.AppError, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, msg)
}
