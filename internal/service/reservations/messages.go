package reservations

// Сообщения для кандидатов и администраторов (одинаковы с исходным
// фронтендом, поэтому на французском)
const (
	// MsgResaConfirmed бронь создана, письмо-приглашение отправлено
	MsgResaConfirmed = "Votre réservation a bien été prise en compte, veuillez consulter votre boîte mail"

	// MsgResaConfirmedNoMail бронь создана, но письмо отправить не удалось
	MsgResaConfirmedNoMail = "Votre réservation a bien été prise en compte, mais l'envoi du courriel de convocation a échoué"

	// MsgResaCancelled бронь отменена, письмо отправлено
	MsgResaCancelled = "La réservation choisie a été annulée, un courriel a été envoyé au candidat"

	// MsgResaCancelledNoMail бронь отменена, письмо отправить не удалось
	MsgResaCancelledNoMail = "La réservation choisie a été annulée, pas de courriel envoyé au candidat"

	// MsgDeletePlaceError бронь отменена, но место не удалось удалить
	MsgDeletePlaceError = "La réservation est annulée, mais la place n'a pas pu être supprimée"
)
