package cancel_subscription

import (
	"context"
	"errors"
	"fmt"

	subStorage "github.com/riquelima/SandyPetShop-BookingService/internal/infra/storage/subscription"
)

// UseCase use case для отмены абонемента
type UseCase struct {
	apptRepo     AppointmentRepository
	subRepo      SubscriptionRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	subRepo SubscriptionRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		subRepo:      subRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены абонемента
// Абонемент деактивируется, его будущие записи удаляются в той же транзакции.
// Прошедшие записи сохраняются - история обслуживания не теряется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelSubscription: id=%d", req.SubscriptionID)

	// 1. Валидация входных данных
	if req.SubscriptionID <= 0 {
		uc.logger.Warn("CancelSubscription: subscriptionID must be positive")
		return nil, fmt.Errorf("%w: subscriptionID must be positive", ErrInvalidInput)
	}

	// 2. Загружаем абонемент
	sub, err := uc.subRepo.GetByID(ctx, req.SubscriptionID)
	if err != nil {
		if errors.Is(err, subStorage.ErrSubscriptionNotFound) {
			uc.logger.Warn("CancelSubscription: subscription id=%d not found", req.SubscriptionID)
			return nil, ErrSubscriptionNotFound
		}
		uc.logger.Error("CancelSubscription: failed to get subscription id=%d: %v", req.SubscriptionID, err)
		return nil, fmt.Errorf("%w: failed to get subscription: %v", ErrInternal, err)
	}

	if !sub.IsActive {
		uc.logger.Warn("CancelSubscription: subscription id=%d is already inactive", req.SubscriptionID)
		return nil, ErrSubscriptionInactive
	}

	// 3. Получаем текущее время: граница удаления будущих записей
	now := uc.timeProvider.Now()

	// Переменная для хранения результата
	var removedCount int64

	// 4. Деактивация и каскадное удаление выполняются атомарно
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.subRepo.Deactivate(txCtx, sub.ID); err != nil {
			if errors.Is(err, subStorage.ErrSubscriptionNotFound) {
				return ErrSubscriptionNotFound
			}
			uc.logger.Error("CancelSubscription: failed to deactivate subscription id=%d: %v", sub.ID, err)
			return fmt.Errorf("%w: failed to deactivate subscription: %v", ErrInternal, err)
		}

		removedCount, err = uc.apptRepo.DeleteFutureBySubscription(txCtx, sub.ID, now)
		if err != nil {
			uc.logger.Error("CancelSubscription: failed to delete future occurrences: %v", err)
			return fmt.Errorf("%w: failed to delete future occurrences: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelSubscription: successfully cancelled subscription id=%d, removed=%d occurrences",
		sub.ID, removedCount)

	return &Response{
		SubscriptionID: sub.ID,
		RemovedCount:   removedCount,
	}, nil
}
