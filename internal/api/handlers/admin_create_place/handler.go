package admin_create_place

import (
	"errors"
	"net/http"
	"time"

	"github.com/mlegeay/examslots/internal/api/handlers"
	"github.com/mlegeay/examslots/internal/service/reservations"
)

const (
	msgInvalidRequestBody = "requête invalide"
	msgInvalidDate        = "format de date invalide, RFC 3339 attendu"
	msgCentreNotFound     = "centre d'examen introuvable"
	msgInspecteurNotFound = "inspecteur introuvable"
	msgPlaceExists        = "une place existe déjà pour cet inspecteur à cette date"
	msgInspecteurBusy     = "l'inspecteur travaille dans un autre centre ce jour-là"
)

// CreatePlaceRequest HTTP request model
type CreatePlaceRequest struct {
	Matricule   string `json:"matricule"`
	NomCentre   string `json:"nomCentre"`
	Departement string `json:"departement"`
	Date        string `json:"date"` // RFC 3339
}

// PlaceResponse HTTP response model
type PlaceResponse struct {
	PlaceID      int64  `json:"placeId"`
	InspecteurID int64  `json:"inspecteurId"`
	CentreID     int64  `json:"centreId"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/places
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreatePlaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/places - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Matricule == "" || req.NomCentre == "" || req.Departement == "" {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	place, err := h.service.CreatePlace(r.Context(), req.Matricule, req.NomCentre, req.Departement, date)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrCentreNotFound):
			handlers.RespondNotFound(w, msgCentreNotFound)

		case errors.Is(err, reservations.ErrInspecteurNotFound):
			handlers.RespondNotFound(w, msgInspecteurNotFound)

		case errors.Is(err, reservations.ErrPlaceExists):
			h.logger.Warn("POST /admin/places - Duplicate place: matricule=%s, date=%s", req.Matricule, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgPlaceExists)

		case errors.Is(err, reservations.ErrInspecteurBusy):
			h.logger.Warn("POST /admin/places - Inspecteur busy: matricule=%s, date=%s", req.Matricule, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgInspecteurBusy)

		default:
			h.logger.Error("POST /admin/places - Failed to create place: matricule=%s, error=%v", req.Matricule, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/places - Place created: id=%d, matricule=%s, date=%s",
		place.ID, req.Matricule, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, &PlaceResponse{
		PlaceID:      place.ID,
		InspecteurID: place.InspecteurID,
		CentreID:     place.CentreID,
		Date:         place.Date.Format(time.RFC3339),
		Status:       string(place.Status),
	})
}
