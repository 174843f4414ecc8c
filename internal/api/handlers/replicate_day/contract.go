package replicate_day

import (
	"context"

	"github.com/m04kA/SMC-WellnessService/internal/service/schedule/models"
)

type ScheduleService interface {
	Replicate(ctx context.Context, req *models.ReplicateRequest) (*models.ReplicateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
