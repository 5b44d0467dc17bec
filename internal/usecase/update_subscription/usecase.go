package update_subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riquelima/SandyPetShop-BookingService/internal/capacity"
	"github.com/riquelima/SandyPetShop-BookingService/internal/civiltime"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
	subStorage "github.com/riquelima/SandyPetShop-BookingService/internal/infra/storage/subscription"
	"github.com/riquelima/SandyPetShop-BookingService/internal/pricing"
	"github.com/riquelima/SandyPetShop-BookingService/internal/recurrence"
	"github.com/riquelima/SandyPetShop-BookingService/pkg/ptr"
)

// UseCase use case для обновления абонемента с регенерацией будущих записей
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

// Execute выполняет use case обновления абонемента
// Будущие записи абонемента удаляются и регенерируются по новому правилу
// с опорой на текущий момент; прошедшие записи не затрагиваются.
// Удаление, проверка занятости и пересоздание выполняются атомарно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateSubscription: id=%d, rule=%s/%d/%d",
		req.SubscriptionID, req.Rule.Type, req.Rule.Day, req.Rule.Hour)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateSubscription: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем абонемент
	sub, err := uc.subRepo.GetByID(ctx, req.SubscriptionID)
	if err != nil {
		if errors.Is(err, subStorage.ErrSubscriptionNotFound) {
			uc.logger.Warn("UpdateSubscription: subscription id=%d not found", req.SubscriptionID)
			return nil, ErrSubscriptionNotFound
		}
		uc.logger.Error("UpdateSubscription: failed to get subscription id=%d: %v", req.SubscriptionID, err)
		return nil, fmt.Errorf("%w: failed to get subscription: %v", ErrInternal, err)
	}

	if !sub.IsActive {
		uc.logger.Warn("UpdateSubscription: subscription id=%d is not active", req.SubscriptionID)
		return nil, ErrSubscriptionInactive
	}

	// 3. Собираем новый набор услуг и весовую категорию
	bundle, err := buildBundle(req.Services)
	if err != nil {
		uc.logger.Warn("UpdateSubscription: invalid bundle: %v", err)
		return nil, err
	}

	weight := domain.WeightClass(req.Weight)
	if err := validateWeight(bundle, weight); err != nil {
		uc.logger.Warn("UpdateSubscription: invalid weight: %v", err)
		return nil, err
	}

	// 4. Разворачиваем новое правило с опорой на текущий момент:
	// уже прошедшие вхождения не регенерируются
	now := uc.timeProvider.Now()

	rule := domain.RecurrenceRule{
		Type:      domain.RecurrenceType(req.Rule.Type),
		DayToken:  req.Rule.Day,
		HourOfDay: req.Rule.Hour,
	}

	occurrences, err := uc.expander.Expand(rule, now)
	if err != nil {
		switch {
		case errors.Is(err, recurrence.ErrInvalidRule):
			uc.logger.Warn("UpdateSubscription: invalid rule: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
		case errors.Is(err, recurrence.ErrNoOccurrences):
			uc.logger.Warn("UpdateSubscription: rule yields no occurrences: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrOutsideWorkingHours, err)
		default:
			uc.logger.Error("UpdateSubscription: failed to expand rule: %v", err)
			return nil, fmt.Errorf("%w: failed to expand rule: %v", ErrInternal, err)
		}
	}

	// 5. Нормализуем аддоны под новую весовую категорию
	selection := pricing.NewAddonSelection(uc.engine.Catalog())
	if err := selection.SetActive(req.Addons, weight); err != nil {
		uc.logger.Warn("UpdateSubscription: invalid addons: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 6. Пересчитываем цену вхождения с абонементной скидкой
	price, err := uc.engine.ComputePrice(bundle, weight, selection, pricing.Options{PackageDiscount: true})
	if err != nil {
		if errors.Is(err, pricing.ErrIncompleteSelection) || errors.Is(err, pricing.ErrUnknownWeight) {
			uc.logger.Warn("UpdateSubscription: pricing failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("UpdateSubscription: failed to compute price: %v", err)
		return nil, fmt.Errorf("%w: failed to compute price: %v", ErrInternal, err)
	}

	exempt := bundle.ContainsMobile()

	// Переменные для хранения результата
	var (
		updatedSub   *domain.Subscription
		createdAppts []*domain.Appointment
		removedCount int64
	)

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Удаляем будущие записи абонемента: освободившиеся слоты
		// не должны конфликтовать с регенерируемыми вхождениями
		removedCount, err = uc.apptRepo.DeleteFutureBySubscription(txCtx, sub.ID, now)
		if err != nil {
			uc.logger.Error("UpdateSubscription: failed to delete future occurrences: %v", err)
			return fmt.Errorf("%w: failed to delete future occurrences: %v", ErrInternal, err)
		}

		// 7.2. Читаем снимок занятости на всём интервале новых вхождений
		first := occurrences[0]
		last := occurrences[len(occurrences)-1]
		from, _ := uc.clock.DayRange(first.Year, first.Month, first.Day)
		_, to := uc.clock.DayRange(last.Year, last.Month, last.Day)

		existing, err := uc.apptRepo.GetScheduledBetween(txCtx, from, to)
		if err != nil {
			uc.logger.Error("UpdateSubscription: failed to load snapshot: %v", err)
			return fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
		}

		snap := capacity.BuildSnapshot(existing)

		// 7.3. Проверяем лимит слотов и дубли: любой конфликт отклоняет обновление
		if conflicts := uc.checker.FindConflicts(occurrences, snap, exempt); len(conflicts) > 0 {
			uc.logger.Warn("UpdateSubscription: %d of %d occurrences hit full slots",
				len(conflicts), len(occurrences))
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, slotKeys(conflicts))
		}

		if dups := uc.checker.FindDuplicates(occurrences, snap, sub.PetName, sub.OwnerName); len(dups) > 0 {
			uc.logger.Warn("UpdateSubscription: duplicate bookings for pet=%s, owner=%s",
				sub.PetName, sub.OwnerName)
			return fmt.Errorf("%w: %s", ErrDuplicateBooking, slotKeys(dups))
		}

		// 7.4. Обновляем параметры абонемента
		sub.Bundle = bundle
		sub.Weight = weight
		sub.Addons = selection.Active()
		sub.Rule = rule
		sub.Price = price

		updatedSub, err = uc.subRepo.Update(txCtx, sub)
		if err != nil {
			if errors.Is(err, subStorage.ErrSubscriptionNotFound) {
				return ErrSubscriptionNotFound
			}
			uc.logger.Error("UpdateSubscription: failed to update subscription: %v", err)
			return fmt.Errorf("%w: failed to update subscription: %v", ErrInternal, err)
		}

		// 7.5. Регенерируем вхождения одной партией
		appts := make([]*domain.Appointment, 0, len(occurrences))
		for _, occ := range occurrences {
			appts = append(appts, &domain.Appointment{
				PetName:        sub.PetName,
				OwnerName:      sub.OwnerName,
				Whatsapp:       sub.Whatsapp,
				Bundle:         bundle,
				Weight:         weight,
				Addons:         selection.Active(),
				StartsAt:       occ.UTC,
				Price:          price,
				Status:         domain.StatusScheduled,
				SubscriptionID: ptr.Ptr(sub.ID),
				Notes:          req.Notes,
			})
		}

		createdAppts, err = uc.apptRepo.CreateBatch(txCtx, appts)
		if err != nil {
			uc.logger.Error("UpdateSubscription: failed to create occurrences: %v", err)
			return fmt.Errorf("%w: failed to create occurrences: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateSubscription: successfully updated subscription id=%d, removed=%d, regenerated=%d",
		updatedSub.ID, removedCount, len(createdAppts))

	return toResponse(updatedSub, createdAppts, removedCount, uc.clock), nil
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
func toResponse(sub *domain.Subscription, appts []*domain.Appointment, removed int64, clock *civiltime.Clock) *Response {
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
		Price:        sub.Price,
		RemovedCount: removed,
		Occurrences:  occurrences,
		CreatedAt:    sub.CreatedAt,
		UpdatedAt:    sub.UpdatedAt,
	}
}
