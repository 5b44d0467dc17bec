package subscriptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riquelima/SandyPetShop-BookingService/internal/catalog"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
)

type stubSubscriptionRepository struct {
	subs []*domain.Subscription
	err  error
}

func (s *stubSubscriptionRepository) GetActive(_ context.Context) ([]*domain.Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.subs, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *stubSubscriptionRepository) *Service {
	return New(repo, catalog.Default(), nopLogger{})
}

func TestGetActiveReturnsSubscriptions(t *testing.T) {
	created := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	repo := &stubSubscriptionRepository{
		subs: []*domain.Subscription{
			{
				ID:        7,
				PetName:   "Rex",
				OwnerName: "Ana Silva",
				Whatsapp:  "+5511999990000",
				Bundle:    domain.Bundle{{Service: domain.ServiceBath, Quantity: 1}},
				Weight:    domain.WeightKg10,
				Addons:    []string{catalog.AddonTosaHigienica},
				Rule: domain.RecurrenceRule{
					Type:      domain.RecurrenceWeekly,
					DayToken:  1,
					HourOfDay: 10,
				},
				Price:     65.0,
				IsActive:  true,
				CreatedAt: created,
				UpdatedAt: created,
			},
		},
	}
	svc := newTestService(repo)

	resp, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Subscriptions, 1)

	sub := resp.Subscriptions[0]
	assert.Equal(t, int64(7), sub.ID)
	assert.Equal(t, "Rex", sub.PetName)
	require.Len(t, sub.Services, 1)
	// Клиенту отдается человекочитаемое название услуги, а не код
	assert.Equal(t, "Só Banho", sub.Services[0].Label)
	assert.Equal(t, string(domain.RecurrenceWeekly), sub.Rule.Type)
	assert.Equal(t, 1, sub.Rule.Day)
	assert.Equal(t, 10, sub.Rule.Hour)
	assert.Equal(t, 65.0, sub.Price)
}

func TestGetActiveEmptyList(t *testing.T) {
	svc := newTestService(&stubSubscriptionRepository{})

	resp, err := svc.GetActive(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, resp.Subscriptions)
	assert.Empty(t, resp.Subscriptions)
}

func TestGetActiveRepositoryError(t *testing.T) {
	svc := newTestService(&stubSubscriptionRepository{err: errors.New("connection refused")})

	_, err := svc.GetActive(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
