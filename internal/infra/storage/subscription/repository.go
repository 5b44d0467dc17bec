package subscription

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
	"github.com/riquelima/SandyPetShop-BookingService/pkg/dbmetrics"
	"github.com/riquelima/SandyPetShop-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с абонементами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория абонементов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

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

// Create создает новый абонемент
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	bundleJSON, err := marshalBundle(sub.Bundle)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal bundle: %v", ErrEncodeBundle, err)
	}

	query, args, err := psqlbuilder.Insert("subscriptions").
		Columns(
			"pet_name",
			"owner_name",
			"whatsapp",
			"bundle",
			"weight",
			"addons",
			"recurrence_type",
			"recurrence_day",
			"recurrence_hour",
			"price",
			"is_active",
		).
		Values(
			sub.PetName,
			sub.OwnerName,
			sub.Whatsapp,
			bundleJSON,
			string(sub.Weight),
			pq.Array(sub.Addons),
			string(sub.Rule.Type),
			sub.Rule.DayToken,
			sub.Rule.HourOfDay,
			sub.Price,
			sub.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sub.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	sub.CreatedAt = createdAt.Time
	sub.UpdatedAt = updatedAt.Time

	return sub, nil
}

// GetByID получает абонемент по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
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

	subs, err := r.scanSubscriptions(rows)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, ErrSubscriptionNotFound
	}
	return subs[0], nil
}

// GetActive получает все активные абонементы
func (r *Repository) GetActive(ctx context.Context) ([]*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectBuilder().
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("pet_name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSubscriptions(rows)
}

// Update обновляет параметры абонемента (правило, набор, цену)
func (r *Repository) Update(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	bundleJSON, err := marshalBundle(sub.Bundle)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - marshal bundle: %v", ErrEncodeBundle, err)
	}

	query, args, err := psqlbuilder.Update("subscriptions").
		Set("bundle", bundleJSON).
		Set("weight", string(sub.Weight)).
		Set("addons", pq.Array(sub.Addons)).
		Set("recurrence_type", string(sub.Rule.Type)).
		Set("recurrence_day", sub.Rule.DayToken).
		Set("recurrence_hour", sub.Rule.HourOfDay).
		Set("price", sub.Price).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": sub.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	sub.CreatedAt = createdAt.Time
	sub.UpdatedAt = updatedAt.Time

	return sub, nil
}

// Deactivate помечает абонемент неактивным
// Записи абонемента репозиторий не трогает - каскадное удаление будущих
// записей выполняет usecase отмены в той же транзакции
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("subscriptions").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
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
		"recurrence_type",
		"recurrence_day",
		"recurrence_hour",
		"price",
		"is_active",
		"created_at",
		"updated_at",
	).From("subscriptions")
}

// scanSubscriptions сканирует результаты запроса в слайс абонементов
func (r *Repository) scanSubscriptions(rows *sql.Rows) ([]*domain.Subscription, error) {
	subs := make([]*domain.Subscription, 0)

	for rows.Next() {
		var sub domain.Subscription
		var bundleJSON []byte
		var weight, recurrenceType string
		var addons pq.StringArray
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&sub.ID,
			&sub.PetName,
			&sub.OwnerName,
			&sub.Whatsapp,
			&bundleJSON,
			&weight,
			&addons,
			&recurrenceType,
			&sub.Rule.DayToken,
			&sub.Rule.HourOfDay,
			&sub.Price,
			&sub.IsActive,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSubscriptions - scan row: %v", ErrScanRow, err)
		}

		bundle, err := unmarshalBundle(bundleJSON)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSubscriptions - unmarshal bundle: %v", ErrScanRow, err)
		}

		sub.Bundle = bundle
		sub.Weight = domain.WeightClass(weight)
		sub.Addons = addons
		sub.Rule.Type = domain.RecurrenceType(recurrenceType)
		sub.CreatedAt = createdAt.Time
		sub.UpdatedAt = updatedAt.Time

		subs = append(subs, &sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSubscriptions - rows error: %v", ErrScanRow, err)
	}

	return subs, nil
}
