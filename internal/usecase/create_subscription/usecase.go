package create_subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riquelima/SandyPetShop-BookingService/internal/capacity"
	"github.com/riquelima/SandyPetShop-BookingService/internal/civiltime"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
	"github.com/riquelima/SandyPetShop-BookingService/internal/pricing"
	"github.com/riquelima/SandyPetShop-BookingService/internal/recurrence"
	"github.com/riquelima/SandyPetShop-BookingService/pkg/ptr"
)

// UseCase use case для создания абонемента с разворачиванием вхождений
type UseCase struct {
	apptRepo     AppointmentRepository
	subRepo      SubscriptionRepository
	engine       *pricing.Engine
	expander     *recurrence.Expander
	checker      *capacity.Checker
	clock        *civiltime.Clock
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	subRepo SubscriptionRepository,
	engine *pricing.Engine,
	expander *recurrence.Expander,
	checker *capacity.Checker,
	clock *civiltime.Clock,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		subRepo:      subRepo,
		engine:       engine,
		expander:     expander,
		checker:      checker,
		clock:        clock,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания абонемента
// Абонемент и все его вхождения сохраняются атомарно: конфликт любого
// вхождения отклоняет партию целиком, частичные партии не сохраняются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSubscription: pet=%s, owner=%s, rule=%s/%d/%d, start=%s",
		req.PetName, req.OwnerName, req.Rule.Type, req.Rule.Day, req.Rule.Hour,
		req.StartDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSubscription: validation failed: %v", err)
		return nil, err
	}

	// 2. Собираем набор услуг и весовую категорию
	bundle, err := buildBundle(req.Services)
	if err != nil {
		uc.logger.Warn("CreateSubscription: invalid bundle: %v", err)
		return nil, err
	}

	weight := domain.WeightClass(req.Weight)
	if err := validateWeight(bundle, weight); err != nil {
		uc.logger.Warn("CreateSubscription: invalid weight: %v", err)
		return nil, err
	}

	// 3. Отклоняем прошедшую опорную дату
	startInstant := uc.clock.FromCivil(req.StartDate.Year(), req.StartDate.Month(), req.StartDate.Day(), 0, 0, 0)
	if uc.clock.IsPastCivilDate(startInstant.UTC) {
		uc.logger.Warn("CreateSubscription: start date %s is in the past", req.StartDate.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	// 4. Разворачиваем правило повторения от опорной даты
	rule := domain.RecurrenceRule{
		Type:      domain.RecurrenceType(req.Rule.Type),
		DayToken:  req.Rule.Day,
		HourOfDay: req.Rule.Hour,
	}

	occurrences, err := uc.expander.Expand(rule, startInstant.UTC)
	if err != nil {
		switch {
		case errors.Is(err, recurrence.ErrInvalidRule):
			uc.logger.Warn("CreateSubscription: invalid rule: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
		case errors.Is(err, recurrence.ErrNoOccurrences):
			uc.logger.Warn("CreateSubscription: rule yields no occurrences: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrOutsideWorkingHours, err)
		default:
			uc.logger.Error("CreateSubscription: failed to expand rule: %v", err)
			return nil, fmt.Errorf("%w: failed to expand rule: %v", ErrInternal, err)
		}
	}

	// 5. Нормализуем аддоны: несовместимые с весовой категорией отбрасываются
	selection := pricing.NewAddonSelection(uc.engine.Catalog())
	if err := selection.SetActive(req.Addons, weight); err != nil {
		uc.logger.Warn("CreateSubscription: invalid addons: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 6. Рассчитываем цену одного вхождения с абонементной скидкой
	price, err := uc.engine.ComputePrice(bundle, weight, selection, pricing.Options{PackageDiscount: true})
	if err != nil {
		if errors.Is(err, pricing.ErrIncompleteSelection) || errors.Is(err, pricing.ErrUnknownWeight) {
			uc.logger.Warn("CreateSubscription: pricing failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("CreateSubscription: failed to compute price: %v", err)
		return nil, fmt.Errorf("%w: failed to compute price: %v", ErrInternal, err)
	}

	exempt := bundle.ContainsMobile()

	// Переменные для хранения результата
	var (
		createdSub   *domain.Subscription
		createdAppts []*domain.Appointment
	)

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Читаем снимок занятости на всём интервале вхождений
		// с блокировкой строк (FOR UPDATE)
		first := occurrences[0]
		last := occurrences[len(occurrences)-1]
		from, _ := uc.clock.DayRange(first.Year, first.Month, first.Day)
		_, to := uc.clock.DayRange(last.Year, last.Month, last.Day)

		existing, err := uc.apptRepo.GetScheduledBetween(txCtx, from, to)
		if err != nil {
			uc.logger.Error("CreateSubscription: failed to load snapshot: %v", err)
			return fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
		}

		snap := capacity.BuildSnapshot(existing)

		// 7.2. Проверяем лимит слотов: любой конфликт отклоняет партию целиком
		if conflicts := uc.checker.FindConflicts(occurrences, snap, exempt); len(conflicts) > 0 {
			uc.logger.Warn("CreateSubscription: %d of %d occurrences hit full slots",
				len(conflicts), len(occurrences))
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, slotKeys(conflicts))
		}

		// 7.3. Проверяем дубли пары (питомец, владелец)
		if dups := uc.checker.FindDuplicates(occurrences, snap, req.PetName, req.OwnerName); len(dups) > 0 {
			uc.logger.Warn("CreateSubscription: duplicate bookings for pet=%s, owner=%s",
				req.PetName, req.OwnerName)
			return fmt.Errorf("%w: %s", ErrDuplicateBooking, slotKeys(dups))
		}

		// 7.4. Сохраняем абонемент
		sub := &domain.Subscription{
			PetName:   req.PetName,
			OwnerName: req.OwnerName,
			Whatsapp:  req.Whatsapp,
			Bundle:    bundle,
			Weight:    weight,
			Addons:    selection.Active(),
			Rule:      rule,
			Price:     price,
			IsActive:  true,
		}

		createdSub, err = uc.subRepo.Create(txCtx, sub)
		if err != nil {
			uc.logger.Error("CreateSubscription: failed to create subscription: %v", err)
			return fmt.Errorf("%w: failed to create subscription: %v", ErrInternal, err)
		}

		// 7.5. Сохраняем вхождения одной партией
		appts := make([]*domain.Appointment, 0, len(occurrences))
		for _, occ := range occurrences {
			appts = append(appts, &domain.Appointment{
				PetName:        req.PetName,
				OwnerName:      req.OwnerName,
				Whatsapp:       req.Whatsapp,
				Bundle:         bundle,
				Weight:         weight,
				Addons:         selection.Active(),
				StartsAt:       occ.UTC,
				Price:          price,
				Status:         domain.StatusScheduled,
				SubscriptionID: ptr.Ptr(createdSub.ID),
				Notes:          req.Notes,
			})
		}

		createdAppts, err = uc.apptRepo.CreateBatch(txCtx, appts)
		if err != nil {
			uc.logger.Error("CreateSubscription: failed to create occurrences: %v", err)
			return fmt.Errorf("%w: failed to create occurrences: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateSubscription: successfully created subscription id=%d with %d occurrences",
		createdSub.ID, len(createdAppts))

	return toResponse(createdSub, createdAppts, uc.clock), nil
}

// slotKeys форматирует инстанты конфликтов для сообщения об ошибке
func slotKeys(instants []civiltime.Instant) string {
	keys := ""
	for i, inst := range instants {
		if i > 0 {
			keys += ", "
		}
		keys += inst.SlotKey()
	}
	return keys
}

// toResponse конвертирует domain модели в response
func toResponse(sub *domain.Subscription, appts []*domain.Appointment, clock *civiltime.Clock) *Response {
	services := make([]ServiceLine, 0, len(sub.Bundle))
	for _, item := range sub.Bundle {
		services = append(services, ServiceLine{
			Service:  string(item.Service),
			Quantity: item.Quantity,
		})
	}

	occurrences := make([]OccurrenceInfo, 0, len(appts))
	for _, appt := range appts {
		civil := clock.Project(appt.StartsAt)
		occurrences = append(occurrences, OccurrenceInfo{
			AppointmentID: appt.ID,
			StartsAt:      appt.StartsAt,
			Date:          time.Date(civil.Year, civil.Month, civil.Day, 0, 0, 0, 0, time.UTC),
			Hour:          civil.Hour,
		})
	}

	return &Response{
		SubscriptionID: sub.ID,
		PetName:        sub.PetName,
		OwnerName:      sub.OwnerName,
		Whatsapp:       sub.Whatsapp,
		Services:       services,
		Weight:         string(sub.Weight),
		Addons:         sub.Addons,
		Rule: RecurrenceInput{
			Type: string(sub.Rule.Type),
			Day:  sub.Rule.DayToken,
			Hour: sub.Rule.HourOfDay,
		},
		Price:       sub.Price,
		Occurrences: occurrences,
		CreatedAt:   sub.CreatedAt,
		UpdatedAt:   sub.UpdatedAt,
	}
}
