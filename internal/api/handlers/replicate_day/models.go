package replicate_day

import (
	"time"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/internal/service/schedule/models"
)

// ReplicateRequest HTTP request model
type ReplicateRequest struct {
	TargetDates []string `json:"targetDates"` // "2025-10-15"
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *ReplicateRequest) ToServiceRequest(sourceDate time.Time) (*models.ReplicateRequest, error) {
	targetDates := make([]time.Time, 0, len(r.TargetDates))
	for _, dateStr := range r.TargetDates {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		targetDates = append(targetDates, date)
	}

	return &models.ReplicateRequest{
		SourceDate:  sourceDate,
		TargetDates: targetDates,
	}, nil
}
