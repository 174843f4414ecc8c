package set_days

import (
	"context"

	"github.com/m04kA/SMC-WellnessService/internal/service/schedule/models"
)

type ScheduleService interface {
	SetDays(ctx context.Context, req *models.SetDaysRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
