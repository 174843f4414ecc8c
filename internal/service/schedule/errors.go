package schedule

import "errors"

var (
	// ErrDayNotFound возвращается, когда день не настроен
	ErrDayNotFound = errors.New("day is not configured")

	// ErrSlotNotFound возвращается, когда слот отсутствует в расписании дня
	ErrSlotNotFound = errors.New("slot not found in day schedule")

	// ErrSlotOccupied возвращается при попытке заблокировать слот с активными бронированиями
	ErrSlotOccupied = errors.New("slot has active bookings")

	// ErrInvalidScheduleConfig возвращается при некорректных параметрах правила расписания
	ErrInvalidScheduleConfig = errors.New("invalid schedule configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
