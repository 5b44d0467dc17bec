package cancel_subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
	"github.com/riquelima/SandyPetShop-BookingService/internal/infra/storage/subscription"
)

type stubAppointmentRepository struct {
	removedCount int64
	deletedSubID int64
	deletedFrom  time.Time
}

func (s *stubAppointmentRepository) DeleteFutureBySubscription(_ context.Context, subscriptionID int64, from time.Time) (int64, error) {
	s.deletedSubID = subscriptionID
	s.deletedFrom = from
	return s.removedCount, nil
}

type stubSubscriptionRepository struct {
	sub         *domain.Subscription
	deactivated []int64
}

func (s *stubSubscriptionRepository) GetByID(_ context.Context, id int64) (*domain.Subscription, error) {
	if s.sub == nil || s.sub.ID != id {
		return nil, subscription.ErrSubscriptionNotFound
	}
	copied := *s.sub
	return &copied, nil
}

func (s *stubSubscriptionRepository) Deactivate(_ context.Context, id int64) error {
	if s.sub == nil || s.sub.ID != id {
		return subscription.ErrSubscriptionNotFound
	}
	s.sub.IsActive = false
	s.deactivated = append(s.deactivated, id)
	return nil
}

type stubTxManager struct{}

func (stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
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

var testNow = time.Date(2026, time.March, 16, 12, 0, 0, 0, time.UTC)

func newTestUseCase(apptRepo *stubAppointmentRepository, subRepo *stubSubscriptionRepository) *UseCase {
	uc := NewUseCase(apptRepo, subRepo, stubTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc
}

func TestExecuteCancelsSubscription(t *testing.T) {
	apptRepo := &stubAppointmentRepository{removedCount: 3}
	subRepo := &stubSubscriptionRepository{sub: &domain.Subscription{ID: 5, IsActive: true}}
	uc := newTestUseCase(apptRepo, subRepo)

	resp, err := uc.Execute(context.Background(), &Request{SubscriptionID: 5})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.SubscriptionID)
	assert.Equal(t, int64(3), resp.RemovedCount)
	assert.Equal(t, []int64{5}, subRepo.deactivated)

	// Граница удаления - текущий момент: история обслуживания сохраняется
	assert.Equal(t, int64(5), apptRepo.deletedSubID)
	assert.Equal(t, testNow, apptRepo.deletedFrom)
}

func TestExecuteSubscriptionNotFound(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepository{}, &stubSubscriptionRepository{})

	_, err := uc.Execute(context.Background(), &Request{SubscriptionID: 42})
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestExecuteAlreadyInactive(t *testing.T) {
	subRepo := &stubSubscriptionRepository{sub: &domain.Subscription{ID: 5, IsActive: false}}
	uc := newTestUseCase(&stubAppointmentRepository{}, subRepo)

	_, err := uc.Execute(context.Background(), &Request{SubscriptionID: 5})
	assert.ErrorIs(t, err, ErrSubscriptionInactive)
	assert.Empty(t, subRepo.deactivated)
}

func TestExecuteRejectsNonPositiveID(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepository{}, &stubSubscriptionRepository{})

	_, err := uc.Execute(context.Background(), &Request{SubscriptionID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
