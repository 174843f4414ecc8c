package apply_preset

import (
	"time"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/internal/service/schedule/models"
)

// ApplyPresetRequest HTTP request model
type ApplyPresetRequest struct {
	Preset string   `json:"preset"` // morning, afternoon, full_day
	Dates  []string `json:"dates"`  // "2025-10-15"
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *ApplyPresetRequest) ToServiceRequest() (*models.ApplyPresetRequest, error) {
	dates := make([]time.Time, 0, len(r.Dates))
	for _, dateStr := range r.Dates {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}

	return &models.ApplyPresetRequest{
		Preset: r.Preset,
		Dates:  dates,
	}, nil
}
