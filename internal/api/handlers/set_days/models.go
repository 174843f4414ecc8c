package set_days

import (
	"time"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/internal/service/schedule/models"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// DayInput HTTP модель настройки одного дня
type DayInput struct {
	Date        string   `json:"date"` // "2025-10-15"
	IsOpen      bool     `json:"isOpen"`
	CustomSlots []string `json:"customSlots,omitempty"`
}

// SetDaysRequest HTTP request model
type SetDaysRequest struct {
	Days []DayInput `json:"days"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *SetDaysRequest) ToServiceRequest() (*models.SetDaysRequest, error) {
	days := make([]models.DayInput, 0, len(r.Days))
	for _, day := range r.Days {
		date, err := time.Parse(domain.DateFormat, day.Date)
		if err != nil {
			return nil, err
		}

		var customSlots []types.TimeString
		if day.CustomSlots != nil {
			customSlots = make([]types.TimeString, 0, len(day.CustomSlots))
			for _, slot := range day.CustomSlots {
				ts, err := types.NewTimeStringFromString(slot)
				if err != nil {
					return nil, err
				}
				customSlots = append(customSlots, ts)
			}
		}

		days = append(days, models.DayInput{
			Date:        date,
			IsOpen:      day.IsOpen,
			CustomSlots: customSlots,
		})
	}

	return &models.SetDaysRequest{Days: days}, nil
}
