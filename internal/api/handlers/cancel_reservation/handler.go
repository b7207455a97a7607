package cancel_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/mlegeay/examslots/internal/api/handlers"
	"github.com/mlegeay/examslots/internal/api/middleware"
	"github.com/mlegeay/examslots/internal/service/reservations"
	cancelReservation "github.com/mlegeay/examslots/internal/usecase/cancel_reservation"
)

const (
	msgNoReservation   = "vous n'avez pas de réservation en cours"
	msgTooLateToCancel = "le délai d'annulation est dépassé, contactez votre département"
)

// CancelResponse HTTP response model
type CancelResponse struct {
	NomCentre   string `json:"nomCentre"`
	Departement string `json:"departement"`
	Date        string `json:"date"`
	MailSent    bool   `json:"mailSent"`
	Message     string `json:"message"`
}

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/places
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	candidatID, ok := middleware.CandidatID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "candidat non identifié")
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelReservation.Request{CandidatID: candidatID})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrNoReservation):
			handlers.RespondNotFound(w, msgNoReservation)

		case errors.Is(err, cancelReservation.ErrTooLateToCancel):
			h.logger.Warn("DELETE /places - Too late to cancel: candidat=%d", candidatID)
			handlers.RespondError(w, http.StatusForbidden, msgTooLateToCancel)

		case errors.Is(err, cancelReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, "requête invalide")

		default:
			h.logger.Error("DELETE /places - Failed to cancel reservation: candidat=%d, error=%v", candidatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /places - Reservation cancelled: candidat=%d, mailSent=%v", candidatID, result.MailSent)
	handlers.RespondJSON(w, http.StatusOK, &CancelResponse{
		NomCentre:   result.NomCentre,
		Departement: result.Departement,
		Date:        result.Date.Format(time.RFC3339),
		MailSent:    result.MailSent,
		Message:     result.Message,
	})
}
