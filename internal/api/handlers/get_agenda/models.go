package get_agenda

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/internal/service/bookings/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
func ToServiceRequest(fromStr, toStr, includeInactiveStr string) (*models.AgendaRequest, error) {
	req := &models.AgendaRequest{}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
