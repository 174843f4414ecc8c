package block_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

type ScheduleService interface {
	BlockSlot(ctx context.Context, date time.Time, startTime types.TimeString) error
	UnblockSlot(ctx context.Context, date time.Time, startTime types.TimeString) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
