package cancel_reservation

import "time"

// Request модель запроса на отмену брони
type Request struct {
	CandidatID int64 // ID кандидата (из заголовка аутентификации)
}

// Response модель ответа об отмененной брони
type Response struct {
	NomCentre   string    // Центр отмененной брони
	Departement string    // Департамент центра
	Date        time.Time // Дата отмененного экзамена

	MailSent bool   // Письмо об отмене отправлено
	Message  string // Пользовательское сообщение
}
