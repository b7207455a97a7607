package place

import "errors"

var (
	// ErrPlaceNotFound возвращается, когда место не найдено
	ErrPlaceNotFound = errors.New("place.repository: place not found")

	// ErrNoFreePlace возвращается, когда на центр и дату нет свободного места
	ErrNoFreePlace = errors.New("place.repository: no free place")

	// ErrDuplicatePlace возвращается при нарушении уникальности (inspecteur, date)
	ErrDuplicatePlace = errors.New("place.repository: place already exists for this inspecteur and date")

	// ErrInspecteurBusy возвращается, когда инспектор уже работает в другом
	// центре в этот день
	ErrInspecteurBusy = errors.New("place.repository: inspecteur is assigned to another centre that day")

	// ErrPlaceAlreadyBooked возвращается, когда место уже занято кандидатом
	ErrPlaceAlreadyBooked = errors.New("place.repository: place is already booked")

	// ErrStatusConflict возвращается, когда статус места не соответствует ожидаемому
	ErrStatusConflict = errors.New("place.repository: place status conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("place.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("place.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("place.repository: failed to scan row")
)
