package import_places

import (
	"io"
	"time"
)

// RowStatus статус обработки одной строки CSV
type RowStatus string

const (
	// StatusCreated место создано
	StatusCreated RowStatus = "created"
	// StatusDuplicate место уже существует, строка пропущена
	StatusDuplicate RowStatus = "duplicate"
	// StatusError строка отклонена с ошибкой
	StatusError RowStatus = "error"
)

// Request модель запроса на импорт мест из CSV
type Request struct {
	// Reader источник CSV (Date;Heure;Matricule;Centre;Departement)
	Reader io.Reader
	// Departement целевой департамент: строки других департаментов
	// отклоняются
	Departement string
}

// RowResult результат обработки одной строки
type RowResult struct {
	Line      int       // Номер строки в файле (заголовок = 1)
	Matricule string    // Матрикул инспектора из строки
	NomCentre string    // Центр из строки
	Date      time.Time // Распарсенная дата экзамена
	Status    RowStatus // Итог обработки
	Message   string    // Детали для статусов duplicate и error
}

// Response модель ответа с построчным отчетом
type Response struct {
	Rows []RowResult

	Created    int // Создано мест
	Duplicates int // Пропущено дубликатов
	Errors     int // Отклонено строк
}
