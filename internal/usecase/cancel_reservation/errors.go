package cancel_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrTooLateToCancel возвращается, когда крайний срок самостоятельной
	// отмены уже прошел. Отменить бронь теперь может только администратор
	ErrTooLateToCancel = errors.New("cancel_reservation: cancellation deadline has passed")
)
