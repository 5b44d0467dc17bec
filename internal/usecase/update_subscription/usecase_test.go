package update_subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riquelima/SandyPetShop-BookingService/internal/capacity"
	"github.com/riquelima/SandyPetShop-BookingService/internal/catalog"
	"github.com/riquelima/SandyPetShop-BookingService/internal/civiltime"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
	"github.com/riquelima/SandyPetShop-BookingService/internal/infra/storage/subscription"
	"github.com/riquelima/SandyPetShop-BookingService/internal/pricing"
	"github.com/riquelima/SandyPetShop-BookingService/internal/recurrence"
)

type stubAppointmentRepository struct {
	existing     []*domain.Appointment
	removedCount int64
	calls        []string
	batches      [][]*domain.Appointment
}

func (s *stubAppointmentRepository) CreateBatch(_ context.Context, appts []*domain.Appointment) ([]*domain.Appointment, error) {
	s.calls = append(s.calls, "createBatch")
	created := make([]*domain.Appointment, 0, len(appts))
	for i, appt := range appts {
		copied := *appt
		copied.ID = int64(i + 1)
		created = append(created, &copied)
	}
	s.batches = append(s.batches, created)
	return created, nil
}

func (s *stubAppointmentRepository) GetScheduledBetween(_ context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	s.calls = append(s.calls, "getScheduledBetween")
	var result []*domain.Appointment
	for _, appt := range s.existing {
		if !appt.StartsAt.Before(from) && appt.StartsAt.Before(to) {
			result = append(result, appt)
		}
	}
	return result, nil
}

func (s *stubAppointmentRepository) DeleteFutureBySubscription(_ context.Context, subscriptionID int64, _ time.Time) (int64, error) {
	s.calls = append(s.calls, "deleteFuture")

	// Удаляем будущие записи абонемента и из снимка занятости
	var kept []*domain.Appointment
	for _, appt := range s.existing {
		if appt.SubscriptionID != nil && *appt.SubscriptionID == subscriptionID {
			continue
		}
		kept = append(kept, appt)
	}
	removed := int64(len(s.existing) - len(kept))
	s.existing = kept
	s.removedCount = removed
	return removed, nil
}

type stubSubscriptionRepository struct {
	sub     *domain.Subscription
	updated *domain.Subscription
}

func (s *stubSubscriptionRepository) GetByID(_ context.Context, id int64) (*domain.Subscription, error) {
	if s.sub == nil || s.sub.ID != id {
		return nil, subscription.ErrSubscriptionNotFound
	}
	copied := *s.sub
	return &copied, nil
}

func (s *stubSubscriptionRepository) Update(_ context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	copied := *sub
	s.updated = &copied
	return &copied, nil
}

type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Фиксированное "сейчас": понедельник 16 марта 2026, 12:00 UTC (09:00 UTC-3)
var testNow = time.Date(2026, time.March, 16, 12, 0, 0, 0, time.UTC)

func newTestUseCase(apptRepo *stubAppointmentRepository, subRepo *stubSubscriptionRepository) (*UseCase, *civiltime.Clock) {
	clock := civiltime.NewClockWithNow(domain.DefaultUTCOffsetHours, func() time.Time { return testNow })
	engine := pricing.NewEngine(catalog.Default(), domain.DefaultPackageDiscount)
	expander := recurrence.NewExpander(clock)
	checker := capacity.NewChecker(domain.DefaultSlotCapacity)

	uc := NewUseCase(apptRepo, subRepo, engine, expander, checker, clock, stubTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc, clock
}

func activeSubscription() *domain.Subscription {
	return &domain.Subscription{
		ID:        5,
		PetName:   "Rex",
		OwnerName: "Ana Silva",
		Whatsapp:  "+5511999990000",
		Bundle:    domain.Bundle{{Service: domain.ServiceBath, Quantity: 1}},
		Weight:    domain.WeightUpTo5,
		Rule:      domain.RecurrenceRule{Type: domain.RecurrenceWeekly, DayToken: 1, HourOfDay: 10},
		Price:     55,
		IsActive:  true,
	}
}

func validRequest() *Request {
	return &Request{
		SubscriptionID: 5,
		Services:       []ServiceLine{{Service: string(domain.ServiceBath), Quantity: 1}},
		Weight:         string(domain.WeightKg10),
		Rule:           RecurrenceInput{Type: string(domain.RecurrenceWeekly), Day: 2, Hour: 14},
	}
}

func TestExecuteRegeneratesOccurrences(t *testing.T) {
	apptRepo := &stubAppointmentRepository{}
	subRepo := &stubSubscriptionRepository{sub: activeSubscription()}
	uc, clock := newTestUseCase(apptRepo, subRepo)

	// Старые будущие записи абонемента по понедельникам
	subID := int64(5)
	for _, day := range []int{23, 30} {
		apptRepo.existing = append(apptRepo.existing, &domain.Appointment{
			PetName:        "Rex",
			OwnerName:      "Ana Silva",
			Bundle:         domain.Bundle{{Service: domain.ServiceBath, Quantity: 1}},
			StartsAt:       clock.FromCivil(2026, time.March, day, 10, 0, 0).UTC,
			Status:         domain.StatusScheduled,
			SubscriptionID: &subID,
		})
	}

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.RemovedCount)
	require.Len(t, resp.Occurrences, 4)

	// Новое правило - вторник 14:00: 17, 24, 31 марта и 7 апреля
	assert.Equal(t, 17, resp.Occurrences[0].Date.Day())
	assert.Equal(t, 24, resp.Occurrences[1].Date.Day())
	assert.Equal(t, 31, resp.Occurrences[2].Date.Day())
	assert.Equal(t, time.April, resp.Occurrences[3].Date.Month())
	assert.Equal(t, 7, resp.Occurrences[3].Date.Day())

	// Цена пересчитана под новую категорию: 75 - 10
	assert.Equal(t, 65.0, resp.Price)
	require.NotNil(t, subRepo.updated)
	assert.Equal(t, domain.WeightKg10, subRepo.updated.Weight)
}

func TestExecuteDeletesBeforeSnapshot(t *testing.T) {
	apptRepo := &stubAppointmentRepository{}
	subRepo := &stubSubscriptionRepository{sub: activeSubscription()}
	uc, clock := newTestUseCase(apptRepo, subRepo)

	// Старая запись абонемента стоит ровно на слоте нового правила:
	// без предварительного удаления она конфликтовала бы сама с собой
	subID := int64(5)
	apptRepo.existing = append(apptRepo.existing, &domain.Appointment{
		PetName:        "Rex",
		OwnerName:      "Ana Silva",
		Bundle:         domain.Bundle{{Service: domain.ServiceBath, Quantity: 1}},
		StartsAt:       clock.FromCivil(2026, time.March, 17, 14, 0, 0).UTC,
		Status:         domain.StatusScheduled,
		SubscriptionID: &subID,
	})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"deleteFuture", "getScheduledBetween", "createBatch"}, apptRepo.calls)
}

func TestExecuteRejectsOnConflict(t *testing.T) {
	apptRepo := &stubAppointmentRepository{}
	subRepo := &stubSubscriptionRepository{sub: activeSubscription()}
	uc, clock := newTestUseCase(apptRepo, subRepo)

	// Чужие записи занимают слот нового правила полностью
	slot := clock.FromCivil(2026, time.March, 24, 14, 0, 0)
	for _, pet := range []string{"Bolt", "Luna"} {
		apptRepo.existing = append(apptRepo.existing, &domain.Appointment{
			PetName:   pet,
			OwnerName: "Bia Costa",
			Bundle:    domain.Bundle{{Service: domain.ServiceBath, Quantity: 1}},
			StartsAt:  slot.UTC,
			Status:    domain.StatusScheduled,
		})
	}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Абонемент не обновлен, записи не пересозданы
	assert.Nil(t, subRepo.updated)
	assert.Empty(t, apptRepo.batches)
}

func TestExecuteSubscriptionNotFound(t *testing.T) {
	apptRepo := &stubAppointmentRepository{}
	subRepo := &stubSubscriptionRepository{}
	uc, _ := newTestUseCase(apptRepo, subRepo)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestExecuteSubscriptionInactive(t *testing.T) {
	sub := activeSubscription()
	sub.IsActive = false

	apptRepo := &stubAppointmentRepository{}
	subRepo := &stubSubscriptionRepository{sub: sub}
	uc, _ := newTestUseCase(apptRepo, subRepo)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSubscriptionInactive)
}

func TestExecuteRejectsInvalidRule(t *testing.T) {
	apptRepo := &stubAppointmentRepository{}
	subRepo := &stubSubscriptionRepository{sub: activeSubscription()}
	uc, _ := newTestUseCase(apptRepo, subRepo)

	req := validRequest()
	req.Rule.Day = 0

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRecurrence)

	// Будущие записи не тронуты: ошибка до транзакции
	assert.Empty(t, apptRepo.calls)
}
