package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riquelima/SandyPetShop-BookingService/internal/catalog"
	"github.com/riquelima/SandyPetShop-BookingService/internal/civiltime"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
	"github.com/riquelima/SandyPetShop-BookingService/internal/infra/storage/appointment"
	"github.com/riquelima/SandyPetShop-BookingService/internal/integrations/notifier"
	"github.com/riquelima/SandyPetShop-BookingService/internal/service/appointments/models"
)

// Service сервис для работы с записями: чтение, расписание дня,
// завершение с уведомлением владельца
type Service struct {
	apptRepo       AppointmentRepository
	notifierClient NotifierClient
	clock          *civiltime.Clock
	catalog        *catalog.Catalog
	timeProvider   TimeProvider
	log            Logger
}

// New создает новый экземпляр сервиса записей
func New(
	apptRepo AppointmentRepository,
	notifierClient NotifierClient,
	clock *civiltime.Clock,
	cat *catalog.Catalog,
	log Logger,
) *Service {
	return &Service{
		apptRepo:       apptRepo,
		notifierClient: notifierClient,
		clock:          clock,
		catalog:        cat,
		timeProvider:   &RealTimeProvider{},
		log:            log,
	}
}

// NewWithTimeProvider создает сервис с кастомным провайдером времени (для тестов)
func NewWithTimeProvider(
	apptRepo AppointmentRepository,
	notifierClient NotifierClient,
	clock *civiltime.Clock,
	cat *catalog.Catalog,
	timeProvider TimeProvider,
	log Logger,
) *Service {
	return &Service{
		apptRepo:       apptRepo,
		notifierClient: notifierClient,
		clock:          clock,
		catalog:        cat,
		timeProvider:   timeProvider,
		log:            log,
	}
}

// GetByID возвращает запись по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: GetByID - appointment id must be positive", ErrInvalidInput)
	}

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, fmt.Errorf("%w: GetByID - id=%d", ErrAppointmentNotFound, id)
		}
		return nil, fmt.Errorf("%w: GetByID - failed to get appointment: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt, s.clock, s.catalog), nil
}

// GetDaySchedule возвращает все записи на гражданскую дату (UTC-3)
func (s *Service) GetDaySchedule(ctx context.Context, year int, month time.Month, day int) (*models.DayScheduleResponse, error) {
	from, to := s.clock.DayRange(year, month, day)

	appts, err := s.apptRepo.GetBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDaySchedule - failed to list appointments: %v", ErrInternal, err)
	}

	return &models.DayScheduleResponse{
		Date:         time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(domain.DateFormat),
		Appointments: models.FromDomainAppointmentList(appts, s.clock, s.catalog),
	}, nil
}

// Complete переводит запись из SCHEDULED в COMPLETED и отправляет
// уведомление владельцу. Повторный вызов для уже завершенной записи
// безопасен и не отправляет уведомление повторно
func (s *Service) Complete(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: Complete - appointment id must be positive", ErrInvalidInput)
	}

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, fmt.Errorf("%w: Complete - id=%d", ErrAppointmentNotFound, id)
		}
		return nil, fmt.Errorf("%w: Complete - failed to get appointment: %v", ErrInternal, err)
	}

	if appt.IsCompleted() {
		s.log.Info("Appointment id=%d already completed, skipping", id)
		return models.FromDomainAppointment(appt, s.clock, s.catalog), nil
	}

	if err := s.apptRepo.UpdateStatus(ctx, id, domain.StatusCompleted); err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, fmt.Errorf("%w: Complete - id=%d", ErrAppointmentNotFound, id)
		}
		return nil, fmt.Errorf("%w: Complete - failed to update status: %v", ErrInternal, err)
	}

	appt.Status = domain.StatusCompleted
	appt.UpdatedAt = s.timeProvider.Now().UTC()

	// Уведомление best-effort: ошибка отправки логируется,
	// переход статуса не откатывается
	s.sendCompletionNotification(ctx, appt)

	return models.FromDomainAppointment(appt, s.clock, s.catalog), nil
}

// Delete удаляет запись по идентификатору
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: Delete - appointment id must be positive", ErrInvalidInput)
	}

	if err := s.apptRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return fmt.Errorf("%w: Delete - id=%d", ErrAppointmentNotFound, id)
		}
		return fmt.Errorf("%w: Delete - failed to delete appointment: %v", ErrInternal, err)
	}

	s.log.Info("Appointment id=%d deleted", id)
	return nil
}

func (s *Service) sendCompletionNotification(ctx context.Context, appt *domain.Appointment) {
	services := make([]string, 0, len(appt.Bundle))
	for _, item := range appt.Bundle {
		if item.Quantity <= 0 {
			continue
		}
		label := string(item.Service)
		if info, ok := s.catalog.Service(item.Service); ok {
			label = info.Label
		}
		services = append(services, label)
	}

	event := &notifier.CompletionEvent{
		AppointmentID: appt.ID,
		PetName:       appt.PetName,
		OwnerName:     appt.OwnerName,
		Whatsapp:      appt.Whatsapp,
		Services:      services,
		Addons:        appt.Addons,
		Price:         appt.Price,
		StartsAt:      appt.StartsAt.UTC().Format(time.RFC3339),
		CompletedAt:   s.timeProvider.Now().UTC().Format(time.RFC3339),
	}

	if err := s.notifierClient.SendCompletion(ctx, event); err != nil {
		s.log.Error("Failed to send completion notification for appointment id=%d: %v", appt.ID, err)
	}
}
