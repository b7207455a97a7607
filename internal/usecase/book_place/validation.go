package book_place

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.CandidatID <= 0 {
		return fmt.Errorf("%w: candidatID must be positive", ErrInvalidInput)
	}

	if req.NomCentre == "" {
		return fmt.Errorf("%w: nomCentre is required", ErrInvalidInput)
	}

	if req.Departement == "" {
		return fmt.Errorf("%w: departement is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Date.Before(now) {
		return ErrDateInPast
	}

	if !req.IsAccompanied {
		return ErrNotAccompanied
	}

	if !req.HasDualControlCar {
		return ErrNoDualControlCar
	}

	return nil
}
