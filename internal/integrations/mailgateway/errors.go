package mailgateway

import "errors"

var (
	// ErrSendFailed возвращается, когда шлюз не принял письмо
	ErrSendFailed = errors.New("mailgateway client: send failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("mailgateway client: invalid response")
)
