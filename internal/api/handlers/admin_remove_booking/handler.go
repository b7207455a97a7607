package admin_remove_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mlegeay/examslots/internal/api/handlers"
	"github.com/mlegeay/examslots/internal/api/middleware"
	"github.com/mlegeay/examslots/internal/service/reservations"
)

const (
	msgInvalidCandidatID = "identifiant candidat invalide"
	msgNoReservation     = "ce candidat n'a pas de réservation en cours"
)

// RemoveBookingResponse HTTP response model
type RemoveBookingResponse struct {
	MailSent bool   `json:"mailSent"`
	Message  string `json:"message"`
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

// Handle DELETE /api/v1/admin/bookings/{candidatId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminEmail, ok := middleware.AdminEmail(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "administrateur non identifié")
		return
	}

	candidatID, err := strconv.ParseInt(mux.Vars(r)["candidatId"], 10, 64)
	if err != nil || candidatID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidCandidatID)
		return
	}

	current, err := h.service.FindBooked(r.Context(), candidatID)
	if err != nil {
		if errors.Is(err, reservations.ErrNoReservation) {
			handlers.RespondNotFound(w, msgNoReservation)
			return
		}
		h.logger.Error("DELETE /admin/bookings - Failed to find reservation: candidat=%d, error=%v", candidatID, err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.AdminForceRelease(r.Context(), current.Place.ID, adminEmail)
	if err != nil {
		if errors.Is(err, reservations.ErrPlaceNotFound) {
			handlers.RespondNotFound(w, msgNoReservation)
			return
		}
		h.logger.Error("DELETE /admin/bookings - Failed to force release: candidat=%d, place=%d, error=%v",
			candidatID, current.Place.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/bookings - Reservation removed: candidat=%d, admin=%s, mailSent=%v",
		candidatID, adminEmail, result.MailSent)
	handlers.RespondJSON(w, http.StatusOK, &RemoveBookingResponse{
		MailSent: result.MailSent,
		Message:  result.Message,
	})
}
