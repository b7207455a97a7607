package mailgateway

import "time"

// BookingMessage данные для письма-приглашения на экзамен
type BookingMessage struct {
	Email        string    `json:"email"`
	NomNaissance string    `json:"nomNaissance"`
	CodeNeph     string    `json:"codeNeph"`
	NomCentre    string    `json:"nomCentre"`
	Departement  string    `json:"departement"`
	Adresse      string    `json:"adresse"`
	Date         time.Time `json:"date"`
}

// CancellationMessage данные для письма об отмене брони
type CancellationMessage struct {
	Email        string    `json:"email"`
	NomNaissance string    `json:"nomNaissance"`
	CodeNeph     string    `json:"codeNeph"`
	NomCentre    string    `json:"nomCentre"`
	Departement  string    `json:"departement"`
	Date         time.Time `json:"date"`
	// ByAdmin различает письмо об административной отмене от подтверждения
	// самостоятельной отмены
	ByAdmin bool `json:"byAdmin"`
}
