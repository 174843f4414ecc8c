package models

import (
	"time"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// Названия сменных пресетов
const (
	PresetMorning   = "morning"
	PresetAfternoon = "afternoon"
	PresetFullDay   = "full_day"
)

// Request модели

// LunchInput настройки обеденного перерыва в правиле расписания
type LunchInput struct {
	Active bool             `json:"active"`
	Start  types.TimeString `json:"start,omitempty"`
	End    types.TimeString `json:"end,omitempty"`
}

// UpdateRuleRequest запрос на обновление правила генерации слотов
type UpdateRuleRequest struct {
	WindowStart            types.TimeString `json:"windowStart"`
	WindowEnd              types.TimeString `json:"windowEnd"`
	SessionDurationMinutes int              `json:"sessionDurationMinutes"`
	GapMinutes             int              `json:"gapMinutes"`
	SlotsPerTime           int              `json:"slotsPerTime"`
	Lunch                  *LunchInput      `json:"lunch,omitempty"`
}

// ToDomainRule конвертирует запрос в domain модель
func (r *UpdateRuleRequest) ToDomainRule() *domain.ScheduleRule {
	rule := &domain.ScheduleRule{
		WindowStart:            r.WindowStart,
		WindowEnd:              r.WindowEnd,
		SessionDurationMinutes: r.SessionDurationMinutes,
		GapMinutes:             r.GapMinutes,
		SlotsPerTime:           r.SlotsPerTime,
	}
	if r.Lunch != nil && r.Lunch.Active {
		rule.Lunch = &domain.LunchBreak{
			Start: r.Lunch.Start,
			End:   r.Lunch.End,
		}
	}
	return rule
}

// DayInput настройка одного дня
type DayInput struct {
	Date        time.Time
	IsOpen      bool
	CustomSlots []types.TimeString // nil - очистить явный список
}

// SetDaysRequest запрос на массовое сохранение настроек дней
type SetDaysRequest struct {
	Days []DayInput
}

// ApplyPresetRequest запрос на раскладку сменного пресета по датам.
// Слоты генерируются по окну пресета с кадансом правила и материализуются
// как явный список дня.
type ApplyPresetRequest struct {
	Preset string
	Dates  []time.Time
}

// ReplicateRequest запрос на копирование настроек дня на другие даты
type ReplicateRequest struct {
	SourceDate  time.Time
	TargetDates []time.Time
}

// Response модели

// ScheduleRuleResponse правило расписания
type ScheduleRuleResponse struct {
	WindowStart            string      `json:"windowStart"`
	WindowEnd              string      `json:"windowEnd"`
	SessionDurationMinutes int         `json:"sessionDurationMinutes"`
	GapMinutes             int         `json:"gapMinutes"`
	SlotsPerTime           int         `json:"slotsPerTime"`
	Lunch                  *LunchInput `json:"lunch,omitempty"`
	UpdatedAt              time.Time   `json:"updatedAt"`
}

// DayResponse настройка дня с текущими блокировками
type DayResponse struct {
	Date         string   `json:"date"` // "2025-10-15"
	IsOpen       bool     `json:"isOpen"`
	CustomSlots  []string `json:"customSlots,omitempty"`
	BlockedSlots []string `json:"blockedSlots,omitempty"`
}

// ScheduleResponse правило и настройки дней за период
type ScheduleResponse struct {
	Rule *ScheduleRuleResponse `json:"rule"`
	Days []DayResponse         `json:"days"`
}

// SkippedDate дата, пропущенная при репликации, с причиной
type SkippedDate struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// ReplicateResponse отчет о репликации настроек дня
type ReplicateResponse struct {
	Applied []string      `json:"applied"`
	Skipped []SkippedDate `json:"skipped"`
}

// Методы конвертации

// FromDomainRule конвертирует domain правило в DTO
func FromDomainRule(rule *domain.ScheduleRule) *ScheduleRuleResponse {
	if rule == nil {
		return nil
	}

	resp := &ScheduleRuleResponse{
		WindowStart:            rule.WindowStart.String(),
		WindowEnd:              rule.WindowEnd.String(),
		SessionDurationMinutes: rule.SessionDurationMinutes,
		GapMinutes:             rule.GapMinutes,
		SlotsPerTime:           rule.SlotsPerTime,
		UpdatedAt:              rule.UpdatedAt,
	}

	if rule.Lunch != nil {
		resp.Lunch = &LunchInput{
			Active: true,
			Start:  rule.Lunch.Start,
			End:    rule.Lunch.End,
		}
	}

	return resp
}

// FromDomainDay конвертирует настройку дня в DTO
func FromDomainDay(day *domain.DayConfig, blockedSlots []types.TimeString) DayResponse {
	resp := DayResponse{
		Date:   day.Day.Format(domain.DateFormat),
		IsOpen: day.IsOpen,
	}

	if day.CustomSlots != nil {
		resp.CustomSlots = make([]string, 0, len(day.CustomSlots))
		for _, s := range day.CustomSlots {
			resp.CustomSlots = append(resp.CustomSlots, s.String())
		}
	}

	if len(blockedSlots) > 0 {
		resp.BlockedSlots = make([]string, 0, len(blockedSlots))
		for _, s := range blockedSlots {
			resp.BlockedSlots = append(resp.BlockedSlots, s.String())
		}
	}

	return resp
}
