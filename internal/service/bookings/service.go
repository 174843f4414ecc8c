package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WellnessService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WellnessService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	hasher      IdentityHasher
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	hasher IdentityHasher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		hasher:      hasher,
		logger:      logger,
	}
}

// Lookup возвращает активные бронирования сотрудника по его идентификатору.
// Digest вычисляется на сервере, сырой идентификатор никуда не сохраняется.
func (s *Service) Lookup(ctx context.Context, req *models.LookupRequest) (*models.BookingListResponse, error) {
	if strings.TrimSpace(req.Identity) == "" {
		return nil, fmt.Errorf("%w: identity is required", ErrInvalidInput)
	}

	identityRef := s.hasher.Digest(req.Identity)
	s.logger.Info("Lookup: fetching active bookings for identity_ref=%s", shortRef(identityRef))

	bookings, err := s.bookingRepo.GetActiveByIdentity(ctx, identityRef)
	if err != nil {
		s.logger.Error("Lookup: repository error: %v", err)
		return nil, fmt.Errorf("%w: Lookup - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Lookup: found %d active bookings for identity_ref=%s", len(bookings), shortRef(identityRef))
	return models.FromDomainBookingList(bookings), nil
}

// CancelByOwner отменяет бронирование по запросу сотрудника.
// Чужое бронирование неотличимо от несуществующего - в обоих случаях
// возвращается ErrBookingNotFound, чтобы не раскрывать занятость слотов.
func (s *Service) CancelByOwner(ctx context.Context, bookingID uuid.UUID, req *models.CancelBookingRequest) error {
	if strings.TrimSpace(req.Identity) == "" {
		return fmt.Errorf("%w: identity is required", ErrInvalidInput)
	}

	identityRef := s.hasher.Digest(req.Identity)
	s.logger.Info("CancelByOwner: cancelling booking id=%s", bookingID)

	booking, err := s.getBooking(ctx, bookingID, "CancelByOwner")
	if err != nil {
		return err
	}

	// Блокировки снимаются только администратором
	if booking.IsBlock() || booking.IdentityRef != identityRef {
		s.logger.Warn("CancelByOwner: identity mismatch for booking id=%s", bookingID)
		return ErrBookingNotFound
	}

	return s.cancel(ctx, booking, "CancelByOwner")
}

// CancelByAdmin отменяет любое бронирование без проверки владельца
func (s *Service) CancelByAdmin(ctx context.Context, bookingID uuid.UUID) error {
	s.logger.Info("CancelByAdmin: cancelling booking id=%s", bookingID)

	booking, err := s.getBooking(ctx, bookingID, "CancelByAdmin")
	if err != nil {
		return err
	}

	return s.cancel(ctx, booking, "CancelByAdmin")
}

// GetAgenda возвращает бронирования за период для административного интерфейса.
// Блокировки слотов тоже возвращаются (с флагом isBlock), чтобы было видно,
// почему слот занят.
func (s *Service) GetAgenda(ctx context.Context, req *models.AgendaRequest) (*models.BookingListResponse, error) {
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: period end before start", ErrInvalidInput)
	}

	filter := domain.AgendaFilter{
		From:            req.From,
		To:              req.To,
		IncludeInactive: req.IncludeInactive,
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAgenda: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAgenda - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAgenda: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, bookingID uuid.UUID, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) cancel(ctx context.Context, booking *domain.Booking, op string) error {
	if booking.IsCancelled() {
		s.logger.Warn("%s: booking id=%s already cancelled", op, booking.ID)
		return ErrAlreadyCancelled
	}

	if err := s.bookingRepo.Cancel(ctx, booking.ID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: successfully cancelled booking id=%s", op, booking.ID)
	return nil
}

// shortRef обрезает digest для логов
func shortRef(ref string) string {
	if len(ref) <= 12 {
		return ref
	}
	return ref[:12]
}
