package book_place

import "time"

// Request модель запроса на бронирование места
type Request struct {
	CandidatID  int64     // ID кандидата (из заголовка аутентификации)
	NomCentre   string    // Название центра
	Departement string    // Департамент центра
	Date        time.Time // Точная дата и время экзамена

	// Декларации кандидата, обязательные для сдачи практического экзамена
	IsAccompanied     bool // Будет сопровождающий
	HasDualControlCar bool // Есть автомобиль с двойным управлением
}

// Response модель ответа с созданной или перенесенной бронью
type Response struct {
	PlaceID     int64     // ID забронированного места
	NomCentre   string    // Название центра
	Departement string    // Департамент центра
	Adresse     string    // Адрес центра
	Date        time.Time // Дата экзамена

	LastDateToCancel time.Time // Крайний срок самостоятельной отмены
	Transferred      bool      // Бронь получена переносом существующей
	MailSent         bool      // Письмо-приглашение отправлено
	Message          string    // Пользовательское сообщение
}
