// Package pqerrors классифицирует коды ошибок PostgreSQL (lib/pq)
//
// Репозитории сводят ошибки драйвера к своим sentinel-ошибкам через %v,
// из-за чего *pq.Error теряется из цепочки. Ошибки сериализации при этом
// обязаны оставаться матчибельными: на них менеджер транзакций повторяет
// сериализуемую транзакцию. WrapDriver сохраняет это свойство.
package pqerrors

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	codeSerializationFailure = "40001"
	codeUniqueViolation      = "23505"
)

// ErrSerialization помечает ошибку сериализации (SQLSTATE 40001)
// Транзакция, завершившаяся такой ошибкой, может быть повторена
var ErrSerialization = errors.New("pqerrors: serialization failure")

// IsSerializationFailure сообщает, является ли err ошибкой сериализации:
// либо необёрнутый *pq.Error с кодом 40001, либо ошибка, сохранённая
// репозиторием через WrapDriver
func IsSerializationFailure(err error) bool {
	if errors.Is(err, ErrSerialization) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == codeSerializationFailure
}

// IsUniqueViolation сообщает, является ли err нарушением уникального
// индекса (SQLSTATE 23505)
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == codeUniqueViolation
}

// WrapDriver оборачивает ошибку драйвера в sentinel репозитория в формате
// "%w: method - step: %v". Ошибки сериализации вместо sentinel получают
// ErrSerialization, чтобы пройти через слои сервиса до менеджера транзакций
func WrapDriver(sentinel error, method, step string, err error) error {
	if IsSerializationFailure(err) {
		sentinel = ErrSerialization
	}
	return fmt.Errorf("%w: %s - %s: %v", sentinel, method, step, err)
}
