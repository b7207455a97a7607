package admin_move_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/mlegeay/examslots/internal/api/handlers"
	"github.com/mlegeay/examslots/internal/service/reservations"
)

const (
	msgInvalidRequestBody = "requête invalide"
	msgPlaceNotFound      = "place introuvable"
	msgNoCandidatOnPlace  = "aucun candidat sur la place d'origine"
	msgTargetBooked       = "la place de destination est déjà réservée"
	msgDifferentCentre    = "les deux places doivent appartenir au même centre"
	msgTargetBeforeSource = "la date de destination doit être postérieure à la date d'origine"
)

// MoveBookingRequest HTTP request model
type MoveBookingRequest struct {
	SourcePlaceID int64 `json:"sourcePlaceId"`
	TargetPlaceID int64 `json:"targetPlaceId"`
}

// MoveBookingResponse HTTP response model
type MoveBookingResponse struct {
	PlaceID    int64  `json:"placeId"`
	CandidatID int64  `json:"candidatId"`
	Date       string `json:"date"`
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

// Handle PATCH /api/v1/admin/places/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req MoveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/places/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.SourcePlaceID <= 0 || req.TargetPlaceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	moved, err := h.service.MoveBooking(r.Context(), req.SourcePlaceID, req.TargetPlaceID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrPlaceNotFound):
			handlers.RespondNotFound(w, msgPlaceNotFound)

		case errors.Is(err, reservations.ErrNoCandidatOnPlace):
			handlers.RespondBadRequest(w, msgNoCandidatOnPlace)

		case errors.Is(err, reservations.ErrTargetPlaceBooked):
			h.logger.Warn("PATCH /admin/places/move - Target booked: source=%d, target=%d",
				req.SourcePlaceID, req.TargetPlaceID)
			handlers.RespondError(w, http.StatusConflict, msgTargetBooked)

		case errors.Is(err, reservations.ErrDifferentCentre):
			handlers.RespondBadRequest(w, msgDifferentCentre)

		case errors.Is(err, reservations.ErrTargetDateBeforeSource):
			handlers.RespondBadRequest(w, msgTargetBeforeSource)

		default:
			h.logger.Error("PATCH /admin/places/move - Failed to move booking: source=%d, target=%d, error=%v",
				req.SourcePlaceID, req.TargetPlaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/places/move - Booking moved: source=%d, target=%d, candidat=%d",
		req.SourcePlaceID, req.TargetPlaceID, *moved.CandidatID)
	handlers.RespondJSON(w, http.StatusOK, &MoveBookingResponse{
		PlaceID:    moved.ID,
		CandidatID: *moved.CandidatID,
		Date:       moved.Date.Format(time.RFC3339),
	})
}
