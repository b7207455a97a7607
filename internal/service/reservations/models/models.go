package models

import (
	"time"

	"github.com/mlegeay/examslots/internal/domain"
)

// BookingResult результат бронирования или переноса места
type BookingResult struct {
	Place    *domain.Place
	Centre   *domain.Centre
	Candidat *domain.Candidat

	// MailSent флаг отправки письма-приглашения: бронь зафиксирована даже
	// если письмо не ушло
	MailSent bool
	Message  string
}

// LastDateToCancel возвращает крайний срок самостоятельной отмены этой брони
func (r *BookingResult) LastDateToCancel() time.Time {
	return domain.LastDateToCancel(r.Place.Date)
}

// ReleaseResult результат освобождения брони
type ReleaseResult struct {
	// MailSent флаг отправки письма об отмене
	MailSent bool
	// Message пользовательское сообщение, различающее варианты
	// "отменено и отправлено" / "отменено без письма" / "место не удалено"
	Message string
}
