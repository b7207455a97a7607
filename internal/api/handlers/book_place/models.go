package book_place

import (
	"time"

	bookPlace "github.com/mlegeay/examslots/internal/usecase/book_place"
)

// BookPlaceRequest HTTP request model
type BookPlaceRequest struct {
	NomCentre         string `json:"nomCentre"`
	Departement       string `json:"departement"`
	Date              string `json:"date"` // RFC 3339, например "2026-09-15T08:30:00+02:00"
	IsAccompanied     bool   `json:"isAccompanied"`
	HasDualControlCar bool   `json:"hasDualControlCar"`
}

// BookPlaceResponse HTTP response model
type BookPlaceResponse struct {
	PlaceID          int64  `json:"placeId"`
	NomCentre        string `json:"nomCentre"`
	Departement      string `json:"departement"`
	Adresse          string `json:"adresse,omitempty"`
	Date             string `json:"date"`
	LastDateToCancel string `json:"lastDateToCancel"`
	Transferred      bool   `json:"transferred"`
	MailSent         bool   `json:"mailSent"`
	Message          string `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookPlaceRequest) ToUseCaseRequest(candidatID int64) (*bookPlace.Request, error) {
	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return nil, err
	}

	return &bookPlace.Request{
		CandidatID:        candidatID,
		NomCentre:         r.NomCentre,
		Departement:       r.Departement,
		Date:              date,
		IsAccompanied:     r.IsAccompanied,
		HasDualControlCar: r.HasDualControlCar,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookPlace.Response) *BookPlaceResponse {
	return &BookPlaceResponse{
		PlaceID:          resp.PlaceID,
		NomCentre:        resp.NomCentre,
		Departement:      resp.Departement,
		Adresse:          resp.Adresse,
		Date:             resp.Date.Format(time.RFC3339),
		LastDateToCancel: resp.LastDateToCancel.Format(time.RFC3339),
		Transferred:      resp.Transferred,
		MailSent:         resp.MailSent,
		Message:          resp.Message,
	}
}
