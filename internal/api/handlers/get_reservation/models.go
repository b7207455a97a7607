package get_reservation

import (
	"time"

	"github.com/mlegeay/examslots/internal/service/reservations/models"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	PlaceID          int64  `json:"placeId"`
	NomCentre        string `json:"nomCentre"`
	Departement      string `json:"departement"`
	Adresse          string `json:"adresse,omitempty"`
	Date             string `json:"date"`
	LastDateToCancel string `json:"lastDateToCancel"`
}

// FromBookingResult конвертирует результат сервиса в HTTP response
func FromBookingResult(result *models.BookingResult) *ReservationResponse {
	return &ReservationResponse{
		PlaceID:          result.Place.ID,
		NomCentre:        result.Centre.Nom,
		Departement:      result.Centre.Departement,
		Adresse:          result.Centre.Adresse,
		Date:             result.Place.Date.Format(time.RFC3339),
		LastDateToCancel: result.LastDateToCancel().Format(time.RFC3339),
	}
}
