package get_reservation

import (
	"errors"
	"net/http"

	"github.com/mlegeay/examslots/internal/api/handlers"
	"github.com/mlegeay/examslots/internal/api/middleware"
	"github.com/mlegeay/examslots/internal/service/reservations"
)

const msgNoReservation = "vous n'avez pas de réservation en cours"

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

// Handle GET /api/v1/places
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	candidatID, ok := middleware.CandidatID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "candidat non identifié")
		return
	}

	result, err := h.service.FindBooked(r.Context(), candidatID)
	if err != nil {
		if errors.Is(err, reservations.ErrNoReservation) {
			handlers.RespondNotFound(w, msgNoReservation)
			return
		}
		h.logger.Error("GET /places - Failed to get reservation: candidat=%d, error=%v", candidatID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromBookingResult(result))
}
