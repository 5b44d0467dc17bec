package civiltime

import (
	"time"
)

// Clock выполняет конвертации между гражданским календарём с фиксированным
// смещением (UTC-3, без переходов на летнее время) и абсолютными UTC-инстантами.
// Смещение фиксировано, поэтому конвертация - чистый арифметический сдвиг,
// а не обращение к базе часовых поясов.
type Clock struct {
	offset time.Duration
	now    func() time.Time
}

// NewClock создает часы с фиксированным смещением в часах (для UTC-3 передать -3)
func NewClock(offsetHours int) *Clock {
	return NewClockWithNow(offsetHours, time.Now)
}

// NewClockWithNow создает часы с инжектируемым источником текущего времени (для тестов)
func NewClockWithNow(offsetHours int, now func() time.Time) *Clock {
	return &Clock{
		offset: time.Duration(offsetHours) * time.Hour,
		now:    now,
	}
}

// Instant абсолютный UTC-инстант вместе с его гражданской проекцией
type Instant struct {
	UTC time.Time

	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Weekday int // 0=воскресенье .. 6=суббота
}

// SlotKey возвращает нормализованный ключ слота (UTC, RFC 3339)
// Используется для подсчёта занятости по точному инстанту
func (i Instant) SlotKey() string {
	return i.UTC.UTC().Format(time.RFC3339)
}

// Now возвращает текущий момент источника времени
func (c *Clock) Now() time.Time {
	return c.now()
}

// FromCivil строит UTC-инстант, гражданская проекция которого равна переданным
// полям настенных часов: UTC = civil - offset (для UTC-3 это civil + 3h).
// Переполнение полей нормализуется правилами time.Date
func (c *Clock) FromCivil(year int, month time.Month, day, hour, minute, second int) Instant {
	utc := time.Date(year, month, day, hour, minute, second, 0, time.UTC).Add(-c.offset)
	return c.Project(utc)
}

// Project возвращает гражданскую проекцию инстанта: UTC + offset,
// поля читаются как UTC (обратная операция к FromCivil)
func (c *Clock) Project(instant time.Time) Instant {
	civil := instant.UTC().Add(c.offset)
	return Instant{
		UTC:     instant.UTC(),
		Year:    civil.Year(),
		Month:   civil.Month(),
		Day:     civil.Day(),
		Hour:    civil.Hour(),
		Minute:  civil.Minute(),
		Weekday: int(civil.Weekday()),
	}
}

// ShiftDays возвращает инстант, сдвинутый на days гражданских дней
// с сохранением часа и минуты настенных часов
func (c *Clock) ShiftDays(i Instant, days int) Instant {
	return c.FromCivil(i.Year, i.Month, i.Day+days, i.Hour, i.Minute, 0)
}

// SameCivilDay сравнивает полные гражданские даты двух инстантов
func (c *Clock) SameCivilDay(a, b time.Time) bool {
	pa := c.Project(a)
	pb := c.Project(b)
	return pa.Year == pb.Year && pa.Month == pb.Month && pa.Day == pb.Day
}

// IsPastCivilDate возвращает true, если гражданская дата инстанта строго
// раньше гражданской даты текущего момента (время суток игнорируется)
func (c *Clock) IsPastCivilDate(instant time.Time) bool {
	p := c.Project(instant)
	n := c.Project(c.now())

	dateOnly := time.Date(p.Year, p.Month, p.Day, 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(n.Year, n.Month, n.Day, 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

// IsWeekend возвращает true, если гражданский день недели - суббота или воскресенье
func (c *Clock) IsWeekend(instant time.Time) bool {
	wd := c.Project(instant).Weekday
	return wd == 0 || wd == 6
}

// DayRange возвращает UTC-границы гражданского дня [from, to)
// для выборки записей на конкретную дату
func (c *Clock) DayRange(year int, month time.Month, day int) (time.Time, time.Time) {
	from := c.FromCivil(year, month, day, 0, 0, 0)
	to := c.FromCivil(year, month, day+1, 0, 0, 0)
	return from.UTC, to.UTC
}
