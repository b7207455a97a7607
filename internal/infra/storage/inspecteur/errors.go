package inspecteur

import "errors"

var (
	// ErrInspecteurNotFound возвращается, когда инспектор не найден
	ErrInspecteurNotFound = errors.New("inspecteur.repository: inspecteur not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("inspecteur.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("inspecteur.repository: failed to scan row")
)
