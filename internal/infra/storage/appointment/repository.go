package appointment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
	"github.com/riquelima/SandyPetShop-BookingService/pkg/dbmetrics"
	"github.com/riquelima/SandyPetShop-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// bundleItem JSON-представление позиции набора услуг в колонке bundle (jsonb)
type bundleItem struct {
	Service  string `json:"service"`
	Quantity int    `json:"quantity"`
}

func marshalBundle(b domain.Bundle) ([]byte, error) {
	items := make([]bundleItem, 0, len(b))
	for _, item := range b {
		items = append(items, bundleItem{Service: string(item.Service), Quantity: item.Quantity})
	}
	return json.Marshal(items)
}

func unmarshalBundle(data []byte) (domain.Bundle, error) {
	var items []bundleItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	bundle := make(domain.Bundle, 0, len(items))
	for _, item := range items {
		bundle = append(bundle, domain.LineItem{
			Service:  domain.ServiceType(item.Service),
			Quantity: item.Quantity,
		})
	}
	return bundle, nil
}

// Create создает новую запись
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	bundleJSON, err := marshalBundle(appt.Bundle)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal bundle: %v", ErrEncodeBundle, err)
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"pet_name",
			"owner_name",
			"whatsapp",
			"bundle",
			"weight",
			"addons",
			"starts_at",
			"price",
			"status",
			"subscription_id",
			"notes",
		).
		Values(
			appt.PetName,
			appt.OwnerName,
			appt.Whatsapp,
			bundleJSON,
			string(appt.Weight),
			pq.Array(appt.Addons),
			appt.StartsAt.UTC(),
			appt.Price,
			appt.Status,
			appt.SubscriptionID,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// CreateBatch создает партию записей
// Вызывается только внутри транзакции: партия либо сохраняется целиком,
// либо не сохраняется вовсе
func (r *Repository) CreateBatch(ctx context.Context, appts []*domain.Appointment) ([]*domain.Appointment, error) {
	created := make([]*domain.Appointment, 0, len(appts))
	for _, appt := range appts {
		result, err := r.Create(ctx, appt)
		if err != nil {
			return nil, fmt.Errorf("CreateBatch - create appointment at %s: %w",
				appt.StartsAt.UTC().Format(time.RFC3339), err)
		}
		created = append(created, result)
	}
	return created, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectBuilder().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appts, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}
	if len(appts) == 0 {
		return nil, ErrAppointmentNotFound
	}
	return appts[0], nil
}

// GetScheduledBetween получает SCHEDULED записи в интервале [from, to)
// Используется как снимок занятости перед проверкой лимита слотов;
// внутри транзакции добавляется FOR UPDATE для блокировки строк
func (r *Repository) GetScheduledBetween(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectBuilder().
		Where(squirrel.Eq{"status": domain.StatusScheduled}).
		Where(squirrel.GtOrEq{"starts_at": from.UTC()}).
		Where(squirrel.Lt{"starts_at": to.UTC()}).
		OrderBy("starts_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduledBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduledBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetBetween получает записи любого статуса в интервале [from, to)
// Используется для расписания дня в админке
func (r *Repository) GetBetween(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectBuilder().
		Where(squirrel.GtOrEq{"starts_at": from.UTC()}).
		Where(squirrel.Lt{"starts_at": to.UTC()}).
		OrderBy("starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete удаляет запись (административное действие)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// DeleteFutureBySubscription удаляет будущие записи абонемента начиная с from
// Прошедшие записи никогда не удаляются - история обслуживания сохраняется
func (r *Repository) DeleteFutureBySubscription(ctx context.Context, subscriptionID int64, from time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"subscription_id": subscriptionID}).
		Where(squirrel.GtOrEq{"starts_at": from.UTC()}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFutureBySubscription - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFutureBySubscription - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFutureBySubscription - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func (r *Repository) selectBuilder() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"pet_name",
		"owner_name",
		"whatsapp",
		"bundle",
		"weight",
		"addons",
		"starts_at",
		"price",
		"status",
		"subscription_id",
		"notes",
		"created_at",
		"updated_at",
	).From("appointments")
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var bundleJSON []byte
		var weight string
		var addons pq.StringArray
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.PetName,
			&appt.OwnerName,
			&appt.Whatsapp,
			&bundleJSON,
			&weight,
			&addons,
			&appt.StartsAt,
			&appt.Price,
			&appt.Status,
			&appt.SubscriptionID,
			&appt.Notes,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		bundle, err := unmarshalBundle(bundleJSON)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - unmarshal bundle: %v", ErrScanRow, err)
		}

		appt.Bundle = bundle
		appt.Weight = domain.WeightClass(weight)
		appt.Addons = addons
		appt.StartsAt = appt.StartsAt.UTC()
		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appts = append(appts, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appts, nil
}
