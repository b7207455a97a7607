package domain

import (
	"time"

	"github.com/google/uuid"
)

// ArchiveReason is the reason code of an archived reservation event
type ArchiveReason string

const (
	// ReasonCancel candidate cancelled the reservation themselves
	ReasonCancel ArchiveReason = "CANCEL"
	// ReasonModify reservation was released as part of a transfer
	ReasonModify ArchiveReason = "MODIFY"
	// ReasonRemoveResaAdmin reservation was removed unilaterally by an admin
	ReasonRemoveResaAdmin ArchiveReason = "REMOVE_RESA_ADMIN"
)

// ArchiveEntry is one immutable record of a past reservation event.
//
// Places are deleted after release, so the archive is the only durable
// history of a candidate's bookings. Entries are append-only.
type ArchiveEntry struct {
	ID         uuid.UUID
	CandidatID int64

	// Denormalized snapshot of the released place
	NomCentre           string
	CentreDepartement   string
	InspecteurMatricule string
	PlaceDate           time.Time

	Reason  ArchiveReason
	ByAdmin bool
	// ActorEmail is the email of whoever triggered the event: the candidate
	// for self-service cancellations, the administrator otherwise
	ActorEmail string

	ArchivedAt time.Time
}
