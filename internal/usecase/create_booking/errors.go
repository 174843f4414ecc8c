package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот отсутствует в расписании дня
	// или уже прошел. Несуществующий и прошедший слот неразличимы.
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrIdentityNotEligible возвращается, когда сотрудник не найден в списке участников
	ErrIdentityNotEligible = errors.New("create_booking: identity is not eligible")

	// ErrWeeklyQuotaExceeded возвращается, когда у сотрудника уже есть
	// активное бронирование на этой неделе
	ErrWeeklyQuotaExceeded = errors.New("create_booking: weekly quota exceeded")

	// ErrSlotFull возвращается, когда места закончились или слот заблокирован.
	// Заполненный и заблокированный слот неразличимы.
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
