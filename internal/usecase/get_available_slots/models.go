package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date   time.Time // Дата, на которую запрашивались слоты
	IsOpen bool      // Открыт ли день для записи
	Slots  []Slot    // Слоты со свободными местами
}

// Slot модель временного слота
type Slot struct {
	StartTime      types.TimeString // Время начала слота (например, "10:00")
	AvailableSpots int              // Количество свободных мест
	TotalSpots     int              // Общее количество мест
}
