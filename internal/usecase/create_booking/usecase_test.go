package create_booking

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
	"github.com/riquelima/SandyPetShop-BookingService/internal/pricing"
	"github.com/riquelima/SandyPetShop-BookingService/pkg/ptr"
)

type stubAppointmentRepository struct {
	existing []*domain.Appointment
	created  []*domain.Appointment
}

func (s *stubAppointmentRepository) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	copied := *appt
	copied.ID = int64(len(s.created) + 1)
	s.created = append(s.created, &copied)
	return &copied, nil
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

type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Фиксированное "сейчас": понедельник 16 марта 2026, 12:00 UTC
var testNow = time.Date(2026, time.March, 16, 12, 0, 0, 0, time.UTC)

func newTestUseCase(repo *stubAppointmentRepository) (*UseCase, *civiltime.Clock) {
	clock := civiltime.NewClockWithNow(domain.DefaultUTCOffsetHours, func() time.Time { return testNow })
	engine := pricing.NewEngine(catalog.Default(), domain.DefaultPackageDiscount)
	checker := capacity.NewChecker(domain.DefaultSlotCapacity)
	return NewUseCase(repo, engine, checker, clock, stubTxManager{}, nopLogger{}), clock
}

func validRequest() *Request {
	return &Request{
		PetName:   "Rex",
		OwnerName: "Ana Silva",
		Whatsapp:  "+5511999990000",
		Services:  []ServiceLine{{Service: string(domain.ServiceBath), Quantity: 1}},
		Weight:    string(domain.WeightUpTo5),
		Date:      time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC),
		Hour:      10,
	}
}

func TestExecuteCreatesAppointment(t *testing.T) {
	repo := &stubAppointmentRepository{}
	uc, clock := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	assert.Equal(t, repo.created[0].ID, resp.ID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, 65.0, resp.Price)
	assert.Equal(t, 10, resp.Hour)
	// Момент начала хранится в UTC: 10:00 UTC-3 = 13:00 UTC
	assert.Equal(t, clock.FromCivil(2026, time.March, 18, 10, 0, 0).UTC, resp.StartsAt)
}

func TestExecuteIgnoresClientPrice(t *testing.T) {
	repo := &stubAppointmentRepository{}
	uc, _ := newTestUseCase(repo)

	req := validRequest()
	req.Services = []ServiceLine{{Service: string(domain.ServiceBathAndGrooming), Quantity: 1}}
	req.Weight = string(domain.WeightKg15)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Цена всегда серверная: 85 + 170 для категории 15 кг
	assert.Equal(t, 255.0, resp.Price)
}

func TestExecutePreservesNotes(t *testing.T) {
	repo := &stubAppointmentRepository{}
	uc, _ := newTestUseCase(repo)

	req := validRequest()
	req.Notes = ptr.Ptr("trazer carteira de vacinação")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.Notes)
	assert.Equal(t, "trazer carteira de vacinação", *resp.Notes)
	require.NotNil(t, repo.created[0].Notes)
	assert.Equal(t, "trazer carteira de vacinação", *repo.created[0].Notes)
}

func TestExecuteRejectsFullSlot(t *testing.T) {
	repo := &stubAppointmentRepository{}
	uc, clock := newTestUseCase(repo)

	slot := clock.FromCivil(2026, time.March, 18, 10, 0, 0)
	for _, pet := range []string{"Bolt", "Luna"} {
		repo.existing = append(repo.existing, &domain.Appointment{
			PetName:   pet,
			OwnerName: "Bia Costa",
			Bundle:    domain.Bundle{{Service: domain.ServiceBath, Quantity: 1}},
			StartsAt:  slot.UTC,
			Status:    domain.StatusScheduled,
		})
	}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, repo.created)
}

func TestExecuteMobileBypassesCapacity(t *testing.T) {
	repo := &stubAppointmentRepository{}
	uc, clock := newTestUseCase(repo)

	slot := clock.FromCivil(2026, time.March, 18, 10, 0, 0)
	for _, pet := range []string{"Bolt", "Luna"} {
		repo.existing = append(repo.existing, &domain.Appointment{
			PetName:   pet,
			OwnerName: "Bia Costa",
			Bundle:    domain.Bundle{{Service: domain.ServiceBath, Quantity: 1}},
			StartsAt:  slot.UTC,
			Status:    domain.StatusScheduled,
		})
	}

	req := validRequest()
	req.Services = []ServiceLine{{Service: string(domain.ServiceMobileBath), Quantity: 1}}

	// Выездная услуга записывается даже на полностью занятый слот
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
}

func TestExecuteRejectsDuplicate(t *testing.T) {
	repo := &stubAppointmentRepository{}
	uc, clock := newTestUseCase(repo)

	slot := clock.FromCivil(2026, time.March, 18, 10, 0, 0)
	repo.existing = append(repo.existing, &domain.Appointment{
		PetName:   "rex",
		OwnerName: "ANA SILVA",
		Bundle:    domain.Bundle{{Service: domain.ServiceBath, Quantity: 1}},
		StartsAt:  slot.UTC,
		Status:    domain.StatusScheduled,
	})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateBooking)
	assert.Empty(t, repo.created)
}

func TestExecuteRejectsPastDate(t *testing.T) {
	repo := &stubAppointmentRepository{}
	uc, _ := newTestUseCase(repo)

	req := validRequest()
	req.Date = time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
	assert.Empty(t, repo.created)
}

func TestExecuteAllowsToday(t *testing.T) {
	repo := &stubAppointmentRepository{}
	uc, _ := newTestUseCase(repo)

	// Сегодняшняя дата не считается прошедшей
	req := validRequest()
	req.Date = time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)
	req.Hour = 9

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecuteRejectsOutsideWorkingHours(t *testing.T) {
	repo := &stubAppointmentRepository{}
	uc, _ := newTestUseCase(repo)

	for _, hour := range []int{8, domain.LunchHour, 18} {
		req := validRequest()
		req.Hour = hour

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideWorkingHours, "hour %d", hour)
	}
	assert.Empty(t, repo.created)
}

func TestExecuteRejectsVisitAtLateHour(t *testing.T) {
	repo := &stubAppointmentRepository{}
	uc, _ := newTestUseCase(repo)

	// Ознакомительные визиты не принимаются на 17:00
	req := validRequest()
	req.Services = []ServiceLine{{Service: string(domain.ServiceVisitDaycare), Quantity: 1}}
	req.Weight = ""
	req.Hour = 17

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecuteValidation(t *testing.T) {
	repo := &stubAppointmentRepository{}
	uc, _ := newTestUseCase(repo)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty pet name", func(r *Request) { r.PetName = "  " }},
		{"empty owner name", func(r *Request) { r.OwnerName = "" }},
		{"empty whatsapp", func(r *Request) { r.Whatsapp = "" }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"no services", func(r *Request) { r.Services = nil }},
		{"unknown service", func(r *Request) { r.Services = []ServiceLine{{Service: "SPA_DAY", Quantity: 1}} }},
		{"missing weight", func(r *Request) { r.Weight = "" }},
		{"unknown addon", func(r *Request) { r.Addons = []string{"nonexistent"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, repo.created)
}

func TestExecuteDropsIncompatibleAddons(t *testing.T) {
	repo := &stubAppointmentRepository{}
	uc, _ := newTestUseCase(repo)

	// Tosa na tesoura несовместима с категорией 10 кг - молча отбрасывается
	req := validRequest()
	req.Weight = string(domain.WeightKg10)
	req.Addons = []string{catalog.AddonTosaTesoura, catalog.AddonAparacao}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{catalog.AddonAparacao}, resp.Addons)
}
