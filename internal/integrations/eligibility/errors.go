package eligibility

import "errors"

var (
	// ErrParticipantNotFound возвращается, когда сотрудник не найден в списке участников
	ErrParticipantNotFound = errors.New("participant not found in wellness program")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("eligibility client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("eligibility client: invalid response")
)
