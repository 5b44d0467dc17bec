package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riquelima/SandyPetShop-BookingService/internal/civiltime"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
)

type stubAppointmentRepository struct {
	existing []*domain.Appointment
}

func (s *stubAppointmentRepository) GetScheduledBetween(_ context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appt := range s.existing {
		if !appt.StartsAt.Before(from) && appt.StartsAt.Before(to) {
			result = append(result, appt)
		}
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, time.March, 16, 12, 0, 0, 0, time.UTC)

func newTestUseCase(repo *stubAppointmentRepository) (*UseCase, *civiltime.Clock) {
	clock := civiltime.NewClockWithNow(domain.DefaultUTCOffsetHours, func() time.Time { return testNow })
	return NewUseCase(repo, clock, domain.DefaultSlotCapacity, nopLogger{}), clock
}

func slotByHour(t *testing.T, slots []SlotInfo, hour int) SlotInfo {
	t.Helper()
	for _, slot := range slots {
		if slot.Hour == hour {
			return slot
		}
	}
	t.Fatalf("slot for hour %d not found", hour)
	return SlotInfo{}
}

func TestExecuteReturnsWorkingHours(t *testing.T) {
	uc, _ := newTestUseCase(&stubAppointmentRepository{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, len(domain.WorkingHours))

	// Обеденный час отсутствует в расписании
	for _, slot := range resp.Slots {
		assert.NotEqual(t, domain.LunchHour, slot.Hour)
		assert.True(t, slot.Available)
		assert.Equal(t, domain.DefaultSlotCapacity, slot.Remaining)
	}
}

func TestExecuteCountsOccupancy(t *testing.T) {
	repo := &stubAppointmentRepository{}
	uc, clock := newTestUseCase(repo)

	// 10:00 занято полностью, 11:00 наполовину
	full := clock.FromCivil(2026, time.March, 18, 10, 0, 0)
	half := clock.FromCivil(2026, time.March, 18, 11, 0, 0)
	for _, appt := range []struct {
		pet  string
		slot civiltime.Instant
	}{
		{"Bolt", full}, {"Luna", full}, {"Mel", half},
	} {
		repo.existing = append(repo.existing, &domain.Appointment{
			PetName:   appt.pet,
			OwnerName: "Bia Costa",
			Bundle:    domain.Bundle{{Service: domain.ServiceBath, Quantity: 1}},
			StartsAt:  appt.slot.UTC,
			Status:    domain.StatusScheduled,
		})
	}

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	fullSlot := slotByHour(t, resp.Slots, 10)
	assert.False(t, fullSlot.Available)
	assert.Equal(t, 0, fullSlot.Remaining)

	halfSlot := slotByHour(t, resp.Slots, 11)
	assert.True(t, halfSlot.Available)
	assert.Equal(t, 1, halfSlot.Remaining)
}

func TestExecuteMobileBundleAlwaysAvailable(t *testing.T) {
	repo := &stubAppointmentRepository{}
	uc, clock := newTestUseCase(repo)

	full := clock.FromCivil(2026, time.March, 18, 10, 0, 0)
	for _, pet := range []string{"Bolt", "Luna"} {
		repo.existing = append(repo.existing, &domain.Appointment{
			PetName:   pet,
			OwnerName: "Bia Costa",
			Bundle:    domain.Bundle{{Service: domain.ServiceBath, Quantity: 1}},
			StartsAt:  full.UTC,
			Status:    domain.StatusScheduled,
		})
	}

	resp, err := uc.Execute(context.Background(), &Request{
		Date:     time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC),
		Services: []ServiceLine{{Service: string(domain.ServiceMobileBath), Quantity: 1}},
	})
	require.NoError(t, err)

	// Выездной набор доступен даже на полностью занятый час
	slot := slotByHour(t, resp.Slots, 10)
	assert.True(t, slot.Available)
	assert.Equal(t, 0, slot.Remaining)
}

func TestExecuteVisitOnlyShortensSchedule(t *testing.T) {
	uc, _ := newTestUseCase(&stubAppointmentRepository{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:     time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC),
		Services: []ServiceLine{{Service: string(domain.ServiceVisitDaycare), Quantity: 1}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, len(domain.VisitWorkingHours))

	// Ознакомительные визиты не принимаются на 17:00
	for _, slot := range resp.Slots {
		assert.NotEqual(t, 17, slot.Hour)
	}
}

func TestExecuteRejectsPastDate(t *testing.T) {
	uc, _ := newTestUseCase(&stubAppointmentRepository{})

	_, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecuteRejectsInvalidInput(t *testing.T) {
	uc, _ := newTestUseCase(&stubAppointmentRepository{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		Date:     time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC),
		Services: []ServiceLine{{Service: "SPA_DAY", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
