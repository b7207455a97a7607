package book_place

import (
	"errors"
	"net/http"

	"github.com/mlegeay/examslots/internal/api/handlers"
	"github.com/mlegeay/examslots/internal/api/middleware"
	"github.com/mlegeay/examslots/internal/service/reservations"
	bookPlace "github.com/mlegeay/examslots/internal/usecase/book_place"
)

const (
	msgInvalidRequestBody = "requête invalide"
	msgInvalidDate        = "format de date invalide, RFC 3339 attendu"
	msgNotAccompanied     = "vous devez être accompagné pour passer l'examen"
	msgNoDualControlCar   = "vous devez disposer d'un véhicule à double commande"
	msgDateInPast         = "la date demandée est déjà passée"
	msgCentreNotFound     = "centre d'examen introuvable"
	msgNoPlaceAvailable   = "il n'y a plus de place disponible sur ce créneau"
	msgSameReservation    = "vous avez déjà une réservation sur ce créneau"
)

type Handler struct {
	useCase BookPlaceUseCase
	logger  Logger
}

func NewHandler(useCase BookPlaceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/places
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	candidatID, ok := middleware.CandidatID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "candidat non identifié")
		return
	}

	var req BookPlaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /places - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(candidatID)
	if err != nil {
		h.logger.Warn("POST /places - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookPlace.ErrNotAccompanied):
			handlers.RespondBadRequest(w, msgNotAccompanied)

		case errors.Is(err, bookPlace.ErrNoDualControlCar):
			handlers.RespondBadRequest(w, msgNoDualControlCar)

		case errors.Is(err, bookPlace.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, bookPlace.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, bookPlace.ErrSameReservation):
			h.logger.Warn("POST /places - Same reservation: candidat=%d", candidatID)
			handlers.RespondError(w, http.StatusConflict, msgSameReservation)

		case errors.Is(err, reservations.ErrCentreNotFound):
			h.logger.Warn("POST /places - Centre not found: %s/%s", req.NomCentre, req.Departement)
			handlers.RespondNotFound(w, msgCentreNotFound)

		case errors.Is(err, reservations.ErrNoPlaceAvailable),
			errors.Is(err, reservations.ErrPlaceTaken):
			h.logger.Warn("POST /places - No place available: candidat=%d, centre=%s/%s, date=%s",
				candidatID, req.NomCentre, req.Departement, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgNoPlaceAvailable)

		case errors.Is(err, reservations.ErrAlreadyBooked):
			handlers.RespondError(w, http.StatusConflict, msgSameReservation)

		default:
			h.logger.Error("POST /places - Failed to book place: candidat=%d, error=%v", candidatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /places - Place booked: candidat=%d, place=%d, transferred=%v",
		candidatID, result.PlaceID, result.Transferred)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
