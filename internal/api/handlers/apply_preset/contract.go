package apply_preset

import (
	"context"

	"github.com/m04kA/SMC-WellnessService/internal/service/schedule/models"
)

type ScheduleService interface {
	ApplyPreset(ctx context.Context, req *models.ApplyPresetRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
