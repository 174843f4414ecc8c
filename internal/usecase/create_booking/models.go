package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// Request модель запроса на создание бронирования.
// Identity - сырой идентификатор сотрудника, digest вычисляется на сервере.
type Request struct {
	Identity  string           // Идентификатор сотрудника
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        uuid.UUID        // ID созданного бронирования
	Date      time.Time        // Дата бронирования
	StartTime types.TimeString // Время начала
	Status    string           // Статус бронирования

	// Имя и группа берутся из списка участников, не из запроса
	DisplayName string
	GroupTag    string

	CreatedAt time.Time // Время создания
}
