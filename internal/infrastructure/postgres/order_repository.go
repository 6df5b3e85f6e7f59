package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/delivery-tax-api/internal/domain"
	"github.com/jhoicas/delivery-tax-api/internal/domain/entity"
	"github.com/jhoicas/delivery-tax-api/internal/domain/repository"
)

// Querier subconjunto común de pgxpool.Pool y pgx.Tx, para usar los mismos
// métodos dentro y fuera de transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Los IDs los asigna la columna serial; TRUNCATE ... RESTART IDENTITY en
// DeleteAll reinicia la secuencia en 1, igual que el store en memoria.
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepository construye el adaptador de persistencia para órdenes.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// EnsureSchema crea la tabla de órdenes si no existe.
func (r *OrderRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			id                 SERIAL PRIMARY KEY,
			latitude           DOUBLE PRECISION NOT NULL,
			longitude          DOUBLE PRECISION NOT NULL,
			subtotal           NUMERIC(12,2) NOT NULL,
			composite_tax_rate NUMERIC(8,5) NOT NULL,
			tax_amount         NUMERIC(12,2) NOT NULL,
			total_amount       NUMERIC(12,2) NOT NULL,
			state_rate         NUMERIC(8,5) NOT NULL,
			county_rate        NUMERIC(8,5) NOT NULL,
			city_rate          NUMERIC(8,5) NOT NULL,
			special_rate       NUMERIC(8,5) NOT NULL,
			state              TEXT NOT NULL,
			county             TEXT NOT NULL,
			city               TEXT NOT NULL,
			special_districts  TEXT[] NOT NULL DEFAULT '{}',
			status             TEXT NOT NULL,
			reporting_code     TEXT NOT NULL,
			ts                 TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("crear schema: %w", err)
	}
	return nil
}

const orderColumns = `id, latitude, longitude, subtotal, composite_tax_rate, tax_amount, total_amount,
	state_rate, county_rate, city_rate, special_rate,
	state, county, city, special_districts, status, reporting_code, ts`

// Create persiste una orden; el ID lo asigna la secuencia.
func (r *OrderRepo) Create(ctx context.Context, order entity.Order) (entity.Order, error) {
	return insertOrder(ctx, r.pool, order)
}

// CreateBatch inserta el lote en una sola transacción: los IDs quedan
// consecutivos y el lote se confirma o descarta completo.
func (r *OrderRepo) CreateBatch(ctx context.Context, orders []entity.Order) ([]entity.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created := make([]entity.Order, 0, len(orders))
	for _, order := range orders {
		inserted, err := insertOrder(ctx, tx, order)
		if err != nil {
			return nil, err
		}
		created = append(created, inserted)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return created, nil
}

func insertOrder(ctx context.Context, q Querier, o entity.Order) (entity.Order, error) {
	query := `
		INSERT INTO orders (latitude, longitude, subtotal, composite_tax_rate, tax_amount, total_amount,
			state_rate, county_rate, city_rate, special_rate,
			state, county, city, special_districts, status, reporting_code, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`
	err := q.QueryRow(ctx, query,
		o.Latitude, o.Longitude, o.Subtotal, o.CompositeTaxRate, o.TaxAmount, o.TotalAmount,
		o.Breakdown.StateRate, o.Breakdown.CountyRate, o.Breakdown.CityRate, o.Breakdown.SpecialRate,
		o.Jurisdictions.State, o.Jurisdictions.County, o.Jurisdictions.City, o.Jurisdictions.SpecialDistricts,
		string(o.Status), o.ReportingCode, o.Timestamp,
	).Scan(&o.ID)
	if err != nil {
		return entity.Order{}, fmt.Errorf("insert order: %w", err)
	}
	return o, nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id int) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// GetAll devuelve la colección completa, la más reciente primero.
func (r *OrderRepo) GetAll(ctx context.Context) ([]entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY id DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// DeleteAll vacía la tabla y reinicia la secuencia de IDs en 1.
func (r *OrderRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `TRUNCATE orders RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate orders: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var status string
	err := row.Scan(
		&o.ID, &o.Latitude, &o.Longitude, &o.Subtotal, &o.CompositeTaxRate, &o.TaxAmount, &o.TotalAmount,
		&o.Breakdown.StateRate, &o.Breakdown.CountyRate, &o.Breakdown.CityRate, &o.Breakdown.SpecialRate,
		&o.Jurisdictions.State, &o.Jurisdictions.County, &o.Jurisdictions.City, &o.Jurisdictions.SpecialDistricts,
		&status, &o.ReportingCode, &o.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}
