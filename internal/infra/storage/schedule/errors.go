package schedule

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило расписания еще не создано
	ErrRuleNotFound = errors.New("schedule.repository: schedule rule not found")

	// ErrDayNotFound возвращается, когда настройка дня не найдена
	ErrDayNotFound = errors.New("schedule.repository: day config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
