package get_available_dates

import (
	"errors"
	"net/http"
	"time"

	"github.com/mlegeay/examslots/internal/api/handlers"
	"github.com/mlegeay/examslots/internal/api/middleware"
	"github.com/mlegeay/examslots/internal/domain"
	"github.com/mlegeay/examslots/internal/service/availability"
	"github.com/mlegeay/examslots/pkg/ptr"
)

const (
	msgMissingCentre  = "les paramètres nomCentre et departement sont requis"
	msgInvalidWindow  = "les paramètres begin et end doivent être au format YYYY-MM-DD"
	msgCentreNotFound = "centre d'examen introuvable"
)

// DatesResponse HTTP response model
type DatesResponse struct {
	Dates []string `json:"dates"`
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

// Handle GET /api/v1/places/dates?nomCentre=...&departement=...&begin=...&end=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	nomCentre := query.Get("nomCentre")
	departement := query.Get("departement")
	if nomCentre == "" || departement == "" {
		handlers.RespondBadRequest(w, msgMissingCentre)
		return
	}

	begin, err := time.ParseInLocation(domain.DateFormat, query.Get("begin"), domain.ParisLocation())
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}
	end, err := time.ParseInLocation(domain.DateFormat, query.Get("end"), domain.ParisLocation())
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}
	// Конец окна включает весь день
	end = end.AddDate(0, 0, 1)

	// Собственная бронь кандидата не должна показываться как свободная дата
	var excludeCandidatID *int64
	if candidatID, ok := middleware.CandidatID(r.Context()); ok {
		excludeCandidatID = ptr.Ptr(candidatID)
	}

	dates, err := h.service.ListAvailableDates(r.Context(), nomCentre, departement, begin, end, excludeCandidatID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrCentreNotFound):
			handlers.RespondNotFound(w, msgCentreNotFound)

		case errors.Is(err, availability.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /places/dates - Failed to list dates: centre=%s/%s, error=%v",
				nomCentre, departement, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &DatesResponse{Dates: make([]string, 0, len(dates))}
	for _, date := range dates {
		response.Dates = append(response.Dates, date.Format(time.RFC3339))
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
