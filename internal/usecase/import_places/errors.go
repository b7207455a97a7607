package import_places

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("import_places: invalid input data")

	// ErrBadHeader возвращается, когда заголовок CSV не соответствует
	// ожидаемому формату Date;Heure;Matricule;Centre;Departement
	ErrBadHeader = errors.New("import_places: unexpected csv header")

	// ErrReadCSV возвращается при ошибке чтения CSV
	ErrReadCSV = errors.New("import_places: failed to read csv")
)
