package get_day_schedule

import (
	"context"
	"time"

	"github.com/riquelima/SandyPetShop-BookingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetDaySchedule(ctx context.Context, year int, month time.Month, day int) (*models.DayScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
