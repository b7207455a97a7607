package reservations

import "errors"

var (
	// ErrCandidatNotFound возвращается, когда кандидат не найден
	ErrCandidatNotFound = errors.New("reservations: candidat not found")

	// ErrCentreNotFound возвращается, когда центр не найден
	ErrCentreNotFound = errors.New("reservations: centre not found")

	// ErrInspecteurNotFound возвращается, когда инспектор не найден
	ErrInspecteurNotFound = errors.New("reservations: inspecteur not found")

	// ErrPlaceNotFound возвращается, когда место не найдено
	ErrPlaceNotFound = errors.New("reservations: place not found")

	// ErrNoReservation возвращается, когда у кандидата нет активной брони
	ErrNoReservation = errors.New("reservations: candidat has no reservation")

	// ErrAlreadyBooked возвращается, когда у кандидата уже есть бронь
	// Сначала нужно освободить текущую бронь
	ErrAlreadyBooked = errors.New("reservations: candidat already has a booked place")

	// ErrNoPlaceAvailable возвращается, когда на центр и дату нет свободных мест
	// Это штатный отрицательный результат, а не сбой
	ErrNoPlaceAvailable = errors.New("reservations: no place available")

	// ErrPlaceTaken возвращается при проигрыше гонки за место: кто-то успел
	// занять его первым. Конфликт, а не порча данных
	ErrPlaceTaken = errors.New("reservations: place was taken by a concurrent booking")

	// ErrPlaceExists возвращается при создании места с уже занятой парой
	// (inspecteur, date)
	ErrPlaceExists = errors.New("reservations: place already exists for this inspecteur and date")

	// ErrInspecteurBusy возвращается при создании места для инспектора,
	// работающего в этот день в другом центре
	ErrInspecteurBusy = errors.New("reservations: inspecteur works at another centre that day")

	// Ошибки предусловий админского переноса брони

	// ErrNoCandidatOnPlace возвращается, когда у исходного места нет кандидата
	ErrNoCandidatOnPlace = errors.New("reservations: source place has no candidat")

	// ErrTargetPlaceBooked возвращается, когда целевое место уже занято
	ErrTargetPlaceBooked = errors.New("reservations: target place is already booked")

	// ErrDifferentCentre возвращается при переносе между разными центрами
	ErrDifferentCentre = errors.New("reservations: target place belongs to another centre")

	// ErrTargetDateBeforeSource возвращается при переносе назад во времени
	ErrTargetDateBeforeSource = errors.New("reservations: target date is before the source date")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
