package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riquelima/SandyPetShop-BookingService/internal/catalog"
	"github.com/riquelima/SandyPetShop-BookingService/internal/civiltime"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
	"github.com/riquelima/SandyPetShop-BookingService/internal/infra/storage/appointment"
	"github.com/riquelima/SandyPetShop-BookingService/internal/integrations/notifier"
)

type stubAppointmentRepository struct {
	appointments  map[int64]*domain.Appointment
	statusUpdates []int64
	deleted       []int64
}

func newStubRepo(appts ...*domain.Appointment) *stubAppointmentRepository {
	repo := &stubAppointmentRepository{appointments: make(map[int64]*domain.Appointment)}
	for _, appt := range appts {
		repo.appointments[appt.ID] = appt
	}
	return repo
}

func (s *stubAppointmentRepository) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := s.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (s *stubAppointmentRepository) GetBetween(_ context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appt := range s.appointments {
		if !appt.StartsAt.Before(from) && appt.StartsAt.Before(to) {
			result = append(result, appt)
		}
	}
	return result, nil
}

func (s *stubAppointmentRepository) UpdateStatus(_ context.Context, id int64, status domain.Status) error {
	appt, ok := s.appointments[id]
	if !ok {
		return appointment.ErrAppointmentNotFound
	}
	appt.Status = status
	s.statusUpdates = append(s.statusUpdates, id)
	return nil
}

func (s *stubAppointmentRepository) Delete(_ context.Context, id int64) error {
	if _, ok := s.appointments[id]; !ok {
		return appointment.ErrAppointmentNotFound
	}
	delete(s.appointments, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type stubNotifierClient struct {
	events []*notifier.CompletionEvent
	err    error
}

func (s *stubNotifierClient) SendCompletion(_ context.Context, event *notifier.CompletionEvent) error {
	s.events = append(s.events, event)
	return s.err
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

var testNow = time.Date(2026, time.March, 16, 18, 0, 0, 0, time.UTC)

func newTestService(repo *stubAppointmentRepository, client *stubNotifierClient) *Service {
	clock := civiltime.NewClock(domain.DefaultUTCOffsetHours)
	return NewWithTimeProvider(repo, client, clock, catalog.Default(), fixedTimeProvider{now: testNow}, nopLogger{})
}

func scheduledAppointment(id int64) *domain.Appointment {
	clock := civiltime.NewClock(domain.DefaultUTCOffsetHours)
	return &domain.Appointment{
		ID:        id,
		PetName:   "Rex",
		OwnerName: "Ana Silva",
		Whatsapp:  "+5511999990000",
		Bundle:    domain.Bundle{{Service: domain.ServiceBath, Quantity: 1}},
		Weight:    domain.WeightUpTo5,
		StartsAt:  clock.FromCivil(2026, time.March, 16, 10, 0, 0).UTC,
		Price:     65,
		Status:    domain.StatusScheduled,
	}
}

func TestGetByID(t *testing.T) {
	repo := newStubRepo(scheduledAppointment(7))
	svc := newTestService(repo, &stubNotifierClient{})

	resp, err := svc.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "2026-03-16", resp.Date)
	assert.Equal(t, 10, resp.Hour)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompleteSendsNotification(t *testing.T) {
	repo := newStubRepo(scheduledAppointment(7))
	client := &stubNotifierClient{}
	svc := newTestService(repo, client)

	resp, err := svc.Complete(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, []int64{7}, repo.statusUpdates)

	require.Len(t, client.events, 1)
	event := client.events[0]
	assert.Equal(t, int64(7), event.AppointmentID)
	assert.Equal(t, "Ana Silva", event.OwnerName)
	// В событии - читаемые названия услуг из каталога, а не коды
	assert.NotContains(t, event.Services, string(domain.ServiceBath))
	assert.Equal(t, testNow.Format(time.RFC3339), event.CompletedAt)
}

func TestCompleteSurvivesNotifierFailure(t *testing.T) {
	repo := newStubRepo(scheduledAppointment(7))
	client := &stubNotifierClient{err: errors.New("notifier unavailable")}
	svc := newTestService(repo, client)

	// Ошибка уведомления не откатывает переход статуса
	resp, err := svc.Complete(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, []int64{7}, repo.statusUpdates)
}

func TestCompleteAlreadyCompletedIsNoOp(t *testing.T) {
	appt := scheduledAppointment(7)
	appt.Status = domain.StatusCompleted
	repo := newStubRepo(appt)
	client := &stubNotifierClient{}
	svc := newTestService(repo, client)

	resp, err := svc.Complete(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)

	// Статус не обновляется повторно, уведомление не дублируется
	assert.Empty(t, repo.statusUpdates)
	assert.Empty(t, client.events)
}

func TestCompleteNotFound(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo, &stubNotifierClient{})

	_, err := svc.Complete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetDaySchedule(t *testing.T) {
	clock := civiltime.NewClock(domain.DefaultUTCOffsetHours)

	inDay := scheduledAppointment(1)
	otherDay := scheduledAppointment(2)
	otherDay.StartsAt = clock.FromCivil(2026, time.March, 17, 10, 0, 0).UTC

	repo := newStubRepo(inDay, otherDay)
	svc := newTestService(repo, &stubNotifierClient{})

	resp, err := svc.GetDaySchedule(context.Background(), 2026, time.March, 16)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-16", resp.Date)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(1), resp.Appointments[0].ID)
}

func TestDelete(t *testing.T) {
	repo := newStubRepo(scheduledAppointment(7))
	svc := newTestService(repo, &stubNotifierClient{})

	require.NoError(t, svc.Delete(context.Background(), 7))
	assert.Equal(t, []int64{7}, repo.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), 7), ErrAppointmentNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), -1), ErrInvalidInput)
}
