package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/riquelima/SandyPetShop-BookingService/internal/capacity"
	"github.com/riquelima/SandyPetShop-BookingService/internal/civiltime"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	apptRepo AppointmentRepository
	clock    *civiltime.Clock
	capacity int
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	clock *civiltime.Clock,
	slotCapacity int,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo: apptRepo,
		clock:    clock,
		capacity: slotCapacity,
		logger:   logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Ответ носит справочный характер: окончательная проверка занятости
// выполняется при создании записи в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		uc.logger.Warn("GetAvailableSlots: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	bundle := toBundle(req.Services)
	if !bundle.IsValid() {
		uc.logger.Warn("GetAvailableSlots: invalid services")
		return nil, fmt.Errorf("%w: unknown service or negative quantity", ErrInvalidInput)
	}

	// 2. Отклоняем прошедшие даты
	dayStart := uc.clock.FromCivil(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0)
	if uc.clock.IsPastCivilDate(dayStart.UTC) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	// 3. Читаем занятость дня
	from, to := uc.clock.DayRange(req.Date.Year(), req.Date.Month(), req.Date.Day())
	existing, err := uc.apptRepo.GetScheduledBetween(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
	}

	snap := capacity.BuildSnapshot(existing)
	exempt := bundle.ContainsMobile()

	// 4. Собираем расписание по рабочим часам
	hours := domain.WorkingHours
	if bundle.ContainsVisitOnly() {
		hours = domain.VisitWorkingHours
	}

	slots := make([]SlotInfo, 0, len(hours))
	for _, hour := range hours {
		instant := uc.clock.FromCivil(req.Date.Year(), req.Date.Month(), req.Date.Day(), hour, 0, 0)

		remaining := uc.capacity - snap.Counts[instant.SlotKey()]
		if remaining < 0 {
			remaining = 0
		}

		slots = append(slots, SlotInfo{
			Hour:      hour,
			StartsAt:  instant.UTC,
			Available: exempt || remaining > 0,
			Remaining: remaining,
		})
	}

	return &Response{
		Date:  time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC),
		Slots: slots,
	}, nil
}

// toBundle собирает набор услуг из запроса
func toBundle(lines []ServiceLine) domain.Bundle {
	bundle := make(domain.Bundle, 0, len(lines))
	for _, line := range lines {
		bundle = append(bundle, domain.LineItem{
			Service:  domain.ServiceType(line.Service),
			Quantity: line.Quantity,
		})
	}
	return bundle
}
