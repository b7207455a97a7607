package check_place

import (
	"errors"
	"net/http"
	"time"

	"github.com/mlegeay/examslots/internal/api/handlers"
	"github.com/mlegeay/examslots/internal/service/availability"
)

const (
	msgMissingParams  = "les paramètres nomCentre, departement et date sont requis"
	msgInvalidDate    = "format de date invalide, RFC 3339 attendu"
	msgCentreNotFound = "centre d'examen introuvable"
)

// CheckResponse HTTP response model
type CheckResponse struct {
	Available bool `json:"available"`
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/places/check?nomCentre=...&departement=...&date=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	nomCentre := query.Get("nomCentre")
	departement := query.Get("departement")
	rawDate := query.Get("date")
	if nomCentre == "" || departement == "" || rawDate == "" {
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	date, err := time.Parse(time.RFC3339, rawDate)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	available, err := h.service.HasAvailablePlaceAt(r.Context(), nomCentre, departement, date)
	if err != nil {
		if errors.Is(err, availability.ErrCentreNotFound) {
			handlers.RespondNotFound(w, msgCentreNotFound)
			return
		}
		h.logger.Error("GET /places/check - Failed to check place: centre=%s/%s, date=%s, error=%v",
			nomCentre, departement, rawDate, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &CheckResponse{Available: available})
}
