package civiltime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCivilProjectRoundTrip(t *testing.T) {
	clock := NewClock(-3)

	// 10:00 по гражданским часам UTC-3 = 13:00 UTC
	instant := clock.FromCivil(2026, time.March, 16, 10, 0, 0)

	assert.Equal(t, time.Date(2026, time.March, 16, 13, 0, 0, 0, time.UTC), instant.UTC)
	assert.Equal(t, 2026, instant.Year)
	assert.Equal(t, time.March, instant.Month)
	assert.Equal(t, 16, instant.Day)
	assert.Equal(t, 10, instant.Hour)

	// Обратная проекция возвращает те же гражданские поля
	projected := clock.Project(instant.UTC)
	assert.Equal(t, instant, projected)
}

func TestFromCivilCrossesMidnight(t *testing.T) {
	clock := NewClock(-3)

	// 22:00 по гражданским часам = 01:00 UTC следующего дня
	instant := clock.FromCivil(2026, time.March, 16, 22, 0, 0)

	assert.Equal(t, time.Date(2026, time.March, 17, 1, 0, 0, 0, time.UTC), instant.UTC)
	assert.Equal(t, 16, instant.Day)
	assert.Equal(t, 22, instant.Hour)
}

func TestFromCivilNormalizesOverflow(t *testing.T) {
	clock := NewClock(-3)

	// День 32 марта нормализуется в 1 апреля
	instant := clock.FromCivil(2026, time.March, 32, 9, 0, 0)

	assert.Equal(t, time.April, instant.Month)
	assert.Equal(t, 1, instant.Day)
}

func TestShiftDaysKeepsWallClock(t *testing.T) {
	clock := NewClock(-3)

	first := clock.FromCivil(2026, time.March, 16, 9, 0, 0)
	shifted := clock.ShiftDays(first, 7)

	assert.Equal(t, 23, shifted.Day)
	assert.Equal(t, 9, shifted.Hour)
	assert.Equal(t, first.UTC.Add(7*24*time.Hour), shifted.UTC)
}

func TestSameCivilDay(t *testing.T) {
	clock := NewClock(-3)

	// 01:00 UTC и 02:59 UTC 17 марта - оба относятся к 16 марта по UTC-3
	a := time.Date(2026, time.March, 17, 1, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 17, 2, 59, 0, 0, time.UTC)
	c := time.Date(2026, time.March, 17, 3, 0, 0, 0, time.UTC)

	assert.True(t, clock.SameCivilDay(a, b))
	assert.False(t, clock.SameCivilDay(a, c))
}

func TestIsPastCivilDate(t *testing.T) {
	now := time.Date(2026, time.March, 16, 12, 0, 0, 0, time.UTC)
	clock := NewClockWithNow(-3, func() time.Time { return now })

	yesterday := clock.FromCivil(2026, time.March, 15, 17, 0, 0)
	today := clock.FromCivil(2026, time.March, 16, 9, 0, 0)
	tomorrow := clock.FromCivil(2026, time.March, 17, 9, 0, 0)

	assert.True(t, clock.IsPastCivilDate(yesterday.UTC))
	// Сегодняшний день не считается прошедшим, даже если час уже прошёл
	assert.False(t, clock.IsPastCivilDate(today.UTC))
	assert.False(t, clock.IsPastCivilDate(tomorrow.UTC))
}

func TestIsWeekend(t *testing.T) {
	clock := NewClock(-3)

	saturday := clock.FromCivil(2026, time.March, 14, 10, 0, 0)
	sunday := clock.FromCivil(2026, time.March, 15, 10, 0, 0)
	monday := clock.FromCivil(2026, time.March, 16, 10, 0, 0)

	assert.True(t, clock.IsWeekend(saturday.UTC))
	assert.True(t, clock.IsWeekend(sunday.UTC))
	assert.False(t, clock.IsWeekend(monday.UTC))
}

func TestDayRange(t *testing.T) {
	clock := NewClock(-3)

	from, to := clock.DayRange(2026, time.March, 16)

	require.Equal(t, time.Date(2026, time.March, 16, 3, 0, 0, 0, time.UTC), from)
	require.Equal(t, time.Date(2026, time.March, 17, 3, 0, 0, 0, time.UTC), to)

	// Запись на 22:00 гражданского дня попадает в интервал
	late := clock.FromCivil(2026, time.March, 16, 22, 0, 0)
	assert.True(t, !late.UTC.Before(from) && late.UTC.Before(to))
}

func TestSlotKey(t *testing.T) {
	clock := NewClock(-3)

	instant := clock.FromCivil(2026, time.March, 16, 10, 0, 0)
	assert.Equal(t, "2026-03-16T13:00:00Z", instant.SlotKey())
}
