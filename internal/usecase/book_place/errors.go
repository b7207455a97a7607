package book_place

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_place: invalid input data")

	// ErrNotAccompanied возвращается, когда кандидат не подтвердил
	// сопровождающего на экзамене
	ErrNotAccompanied = errors.New("book_place: candidat must be accompanied")

	// ErrNoDualControlCar возвращается, когда кандидат не подтвердил
	// автомобиль с двойным управлением
	ErrNoDualControlCar = errors.New("book_place: candidat must have a dual control car")

	// ErrDateInPast возвращается при попытке бронирования на прошедшую дату
	ErrDateInPast = errors.New("book_place: date is in the past")

	// ErrSameReservation возвращается при повторном бронировании того же
	// центра и даты, что у активной брони
	ErrSameReservation = errors.New("book_place: candidat already holds this reservation")
)
