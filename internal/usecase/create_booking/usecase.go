package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riquelima/SandyPetShop-BookingService/internal/capacity"
	"github.com/riquelima/SandyPetShop-BookingService/internal/civiltime"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
	"github.com/riquelima/SandyPetShop-BookingService/internal/pricing"
)

// UseCase use case для создания разовой записи
type UseCase struct {
	apptRepo     AppointmentRepository
	engine       *pricing.Engine
	checker      *capacity.Checker
	clock        *civiltime.Clock
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	engine *pricing.Engine,
	checker *capacity.Checker,
	clock *civiltime.Clock,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		engine:       engine,
		checker:      checker,
		clock:        clock,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания разовой записи
// Проверка занятости и сохранение выполняются в сериализуемой транзакции
// для предотвращения гонки данных между конкурентными запросами
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: pet=%s, owner=%s, date=%s, hour=%d",
		req.PetName, req.OwnerName, req.Date.Format(domain.DateFormat), req.Hour)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Собираем набор услуг и весовую категорию
	bundle, err := buildBundle(req.Services)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid bundle: %v", err)
		return nil, err
	}

	weight := domain.WeightClass(req.Weight)
	if err := validateWeight(bundle, weight); err != nil {
		uc.logger.Warn("CreateBooking: invalid weight: %v", err)
		return nil, err
	}

	// 3. Проверяем час против рабочих часов салона
	if err := validateHour(req.Hour, bundle); err != nil {
		uc.logger.Warn("CreateBooking: hour validation failed: %v", err)
		return nil, err
	}

	// 4. Строим инстант начала и отклоняем прошедшие даты
	instant := uc.clock.FromCivil(req.Date.Year(), req.Date.Month(), req.Date.Day(), req.Hour, 0, 0)
	if uc.clock.IsPastCivilDate(instant.UTC) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	// 5. Нормализуем аддоны: несовместимые с весовой категорией отбрасываются
	selection := pricing.NewAddonSelection(uc.engine.Catalog())
	if err := selection.SetActive(req.Addons, weight); err != nil {
		uc.logger.Warn("CreateBooking: invalid addons: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 6. Рассчитываем цену на сервере (цена клиента игнорируется)
	price, err := uc.engine.ComputePrice(bundle, weight, selection, pricing.Options{})
	if err != nil {
		if errors.Is(err, pricing.ErrIncompleteSelection) || errors.Is(err, pricing.ErrUnknownWeight) {
			uc.logger.Warn("CreateBooking: pricing failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("CreateBooking: failed to compute price: %v", err)
		return nil, fmt.Errorf("%w: failed to compute price: %v", ErrInternal, err)
	}

	exempt := bundle.ContainsMobile()

	// Переменная для хранения результата
	var result *domain.Appointment

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Читаем снимок занятости дня с блокировкой строк (FOR UPDATE)
		from, to := uc.clock.DayRange(instant.Year, instant.Month, instant.Day)
		existing, err := uc.apptRepo.GetScheduledBetween(txCtx, from, to)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to load day snapshot: %v", err)
			return fmt.Errorf("%w: failed to load day snapshot: %v", ErrInternal, err)
		}

		snap := capacity.BuildSnapshot(existing)
		candidates := []civiltime.Instant{instant}

		// 7.2. Проверяем лимит слота (выездные наборы освобождены от лимита)
		if conflicts := uc.checker.FindConflicts(candidates, snap, exempt); len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: slot %s is full", instant.SlotKey())
			return ErrSlotNotAvailable
		}

		// 7.3. Проверяем дубль пары (питомец, владелец) на этот слот
		if dups := uc.checker.FindDuplicates(candidates, snap, req.PetName, req.OwnerName); len(dups) > 0 {
			uc.logger.Warn("CreateBooking: duplicate booking for pet=%s, owner=%s at %s",
				req.PetName, req.OwnerName, instant.SlotKey())
			return ErrDuplicateBooking
		}

		// 7.4. Сохраняем запись
		appt := &domain.Appointment{
			PetName:   req.PetName,
			OwnerName: req.OwnerName,
			Whatsapp:  req.Whatsapp,
			Bundle:    bundle,
			Weight:    weight,
			Addons:    selection.Active(),
			StartsAt:  instant.UTC,
			Price:     price,
			Status:    domain.StatusScheduled,
			Notes:     req.Notes,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%d, price=%.2f", result.ID, result.Price)

	return toResponse(result, uc.clock), nil
}

// toResponse конвертирует domain модель в response
func toResponse(appt *domain.Appointment, clock *civiltime.Clock) *Response {
	civil := clock.Project(appt.StartsAt)
	civilDate := time.Date(civil.Year, civil.Month, civil.Day, 0, 0, 0, 0, time.UTC)

	services := make([]ServiceLine, 0, len(appt.Bundle))
	for _, item := range appt.Bundle {
		services = append(services, ServiceLine{
			Service:  string(item.Service),
			Quantity: item.Quantity,
		})
	}

	return &Response{
		ID:        appt.ID,
		PetName:   appt.PetName,
		OwnerName: appt.OwnerName,
		Whatsapp:  appt.Whatsapp,
		Services:  services,
		Weight:    string(appt.Weight),
		Addons:    appt.Addons,
		StartsAt:  appt.StartsAt,
		Date:      civilDate,
		Hour:      civil.Hour,
		Price:     appt.Price,
		Status:    string(appt.Status),
		Notes:     appt.Notes,
		CreatedAt: appt.CreatedAt,
		UpdatedAt: appt.UpdatedAt,
	}
}
