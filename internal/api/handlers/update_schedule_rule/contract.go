package update_schedule_rule

import (
	"context"

	"github.com/m04kA/SMC-WellnessService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetRule(ctx context.Context) (*models.ScheduleRuleResponse, error)
	UpdateRule(ctx context.Context, req *models.UpdateRuleRequest) (*models.ScheduleRuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
