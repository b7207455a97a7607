package availability

import "errors"

var (
	// ErrCentreNotFound возвращается, когда центр не найден
	ErrCentreNotFound = errors.New("availability: centre not found")

	// ErrInvalidRange возвращается, когда начало окна позже конца
	ErrInvalidRange = errors.New("availability: begin is after end")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
