package import_places

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mlegeay/examslots/internal/domain"
	"github.com/mlegeay/examslots/internal/service/reservations"
)

// Колонки CSV в формате исходного экспорта планирования
var expectedHeader = []string{"date", "heure", "matricule", "centre", "departement"}

// UseCase use case массового импорта мест из CSV
//
// Каждая строка проходит через тот же примитив создания места, что и
// HTTP-путь: дубликаты и занятые инспекторы отклоняются теми же
// правилами. Ошибка строки не прерывает импорт, итог построчный
type UseCase struct {
	reservations ReservationService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationService ReservationService, logger Logger) *UseCase {
	return &UseCase{
		reservations: reservationService,
		logger:       logger,
	}
}

// Execute выполняет use case импорта мест
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Reader == nil {
		return nil, fmt.Errorf("%w: reader is required", ErrInvalidInput)
	}
	if req.Departement == "" {
		return nil, fmt.Errorf("%w: departement is required", ErrInvalidInput)
	}

	uc.logger.Info("ImportPlaces: departement=%s", req.Departement)

	reader := csv.NewReader(req.Reader)
	reader.Comma = ';'
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadCSV, err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	resp := &Response{}
	line := 1

	for {
		line++

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			resp.addRow(RowResult{Line: line, Status: StatusError, Message: err.Error()})
			continue
		}

		resp.addRow(uc.importRow(ctx, line, record, req.Departement))
	}

	uc.logger.Info("ImportPlaces: departement=%s done, created=%d, duplicates=%d, errors=%d",
		req.Departement, resp.Created, resp.Duplicates, resp.Errors)
	return resp, nil
}

func (uc *UseCase) importRow(ctx context.Context, line int, record []string, departement string) RowResult {
	row := RowResult{
		Line:      line,
		Matricule: strings.TrimSpace(record[2]),
		NomCentre: strings.TrimSpace(record[3]),
	}

	rowDepartement := strings.TrimSpace(record[4])
	if rowDepartement != departement {
		row.Status = StatusError
		row.Message = fmt.Sprintf("departement %s does not match import target %s", rowDepartement, departement)
		return row
	}

	date, err := parseRowDate(record[0], record[1])
	if err != nil {
		row.Status = StatusError
		row.Message = err.Error()
		return row
	}
	row.Date = date

	if row.Matricule == "" || row.NomCentre == "" {
		row.Status = StatusError
		row.Message = "matricule and centre are required"
		return row
	}

	_, err = uc.reservations.CreatePlace(ctx, row.Matricule, row.NomCentre, departement, date)
	switch {
	case err == nil:
		row.Status = StatusCreated
	case errors.Is(err, reservations.ErrPlaceExists):
		row.Status = StatusDuplicate
		row.Message = "place already exists"
	default:
		uc.logger.Warn("ImportPlaces: line %d rejected: %v", line, err)
		row.Status = StatusError
		row.Message = err.Error()
	}
	return row
}

func validateHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrBadHeader, len(header), len(expectedHeader))
	}
	for i, name := range expectedHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i+1, header[i], name)
		}
	}
	return nil
}

func parseRowDate(date, heure string) (t time.Time, err error) {
	raw := strings.TrimSpace(date) + " " + strings.TrimSpace(heure)
	t, err = time.ParseInLocation(domain.ImportDateTimeFormat, raw, domain.ParisLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want %q", raw, domain.ImportDateTimeFormat)
	}
	return t, nil
}

func (r *Response) addRow(row RowResult) {
	r.Rows = append(r.Rows, row)
	switch row.Status {
	case StatusCreated:
		r.Created++
	case StatusDuplicate:
		r.Duplicates++
	case StatusError:
		r.Errors++
	}
}
