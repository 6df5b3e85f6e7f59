package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/delivery-tax-api/internal/application/dto"
	"github.com/jhoicas/delivery-tax-api/internal/application/importer"
	"github.com/jhoicas/delivery-tax-api/internal/application/query"
	"github.com/jhoicas/delivery-tax-api/internal/domain"
	"github.com/jhoicas/delivery-tax-api/internal/domain/entity"
	"github.com/jhoicas/delivery-tax-api/internal/domain/repository"
	"github.com/jhoicas/delivery-tax-api/internal/domain/tax"
)

// Límites de paginación y de subtotal para la creación manual.
const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

var maxSubtotal = decimal.NewFromInt(10000)

// OrderUseCase casos de uso sobre la colección de órdenes: creación manual,
// listado filtrado/ordenado/paginado, import CSV y export.
type OrderUseCase struct {
	repo   repository.OrderRepository
	calc   *tax.Calculator
	engine *query.Engine
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository, calc *tax.Calculator, engine *query.Engine) *OrderUseCase {
	return &OrderUseCase{repo: repo, calc: calc, engine: engine}
}

// Create valida el payload, calcula el impuesto y persiste la orden.
// La validación enumera todos los campos inválidos en un solo error.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*entity.Order, error) {
	fields := map[string]string{}

	if in.Latitude == nil {
		fields["latitude"] = "latitude es requerido"
	} else if *in.Latitude < tax.StateLatMin || *in.Latitude > tax.StateLatMax {
		fields["latitude"] = "latitude debe estar entre 40.4 y 45.1"
	}
	if in.Longitude == nil {
		fields["longitude"] = "longitude es requerido"
	} else if *in.Longitude < tax.StateLonMin || *in.Longitude > tax.StateLonMax {
		fields["longitude"] = "longitude debe estar entre -79.8 y -71.8"
	}
	if in.Subtotal == nil {
		fields["subtotal"] = "subtotal es requerido"
	} else if in.Subtotal.LessThan(decimal.NewFromFloat(0.01)) || in.Subtotal.GreaterThan(maxSubtotal) {
		fields["subtotal"] = "subtotal debe estar entre 0.01 y 10000"
	}

	timestamp := time.Now().UTC()
	if in.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, in.Timestamp)
		if err != nil {
			fields["timestamp"] = "timestamp debe ser una fecha RFC3339 válida"
		} else {
			timestamp = ts
		}
	}

	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	order := uc.buildOrder(*in.Latitude, *in.Longitude, *in.Subtotal, timestamp)
	created, err := uc.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// List devuelve la página solicitada tras filtrar y ordenar la colección.
// page < 1 cae a 1; pageSize fuera de [1, MaxPageSize] cae al default o al tope.
func (uc *OrderUseCase) List(ctx context.Context, page, pageSize int, filters dto.OrderFilters) (*dto.OrderListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	orders, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	data, meta := uc.engine.Query(orders, page, pageSize, filters)
	return &dto.OrderListResponse{Data: data, Meta: meta}, nil
}

// GetByID obtiene una orden por ID.
func (uc *OrderUseCase) GetByID(ctx context.Context, id int) (*entity.Order, error) {
	return uc.repo.GetByID(ctx, id)
}

// GetAll devuelve la colección completa (la más reciente primero). Un limit > 0
// recorta a las primeras limit órdenes.
func (uc *OrderUseCase) GetAll(ctx context.Context, limit int) ([]entity.Order, error) {
	orders, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(orders) {
		orders = orders[:limit]
	}
	return orders, nil
}

// ClearAll borra la colección completa y reinicia la secuencia de IDs.
func (uc *OrderUseCase) ClearAll(ctx context.Context) error {
	return uc.repo.DeleteAll(ctx)
}

// ImportCSV valida el archivo completo y confirma SOLO las filas válidas en un
// lote atómico. Las inválidas se devuelven con todos sus errores de campo para
// la tabla de revisión; nunca se descartan en silencio. El id de la fila CSV
// es solo de referencia: el store asigna sus propios IDs secuenciales.
func (uc *OrderUseCase) ImportCSV(ctx context.Context, text string) (*dto.ImportResponse, error) {
	raw := importer.Parse(text)
	if len(raw) == 0 {
		return nil, domain.ErrEmptyImport
	}

	validated, summary := importer.ValidateAll(raw)

	orders := make([]entity.Order, 0, summary.Valid)
	invalid := make([]dto.InvalidRow, 0, summary.Invalid)
	for _, v := range validated {
		if !v.Valid {
			invalid = append(invalid, dto.InvalidRow{
				ID:        v.Row.ID,
				Longitude: v.Row.Longitude,
				Latitude:  v.Row.Latitude,
				Timestamp: v.Row.Timestamp,
				Subtotal:  v.Row.Subtotal,
				Errors:    v.Errors,
			})
			continue
		}
		ts, _ := importer.ParseTimestamp(v.Row.Timestamp)
		orders = append(orders, uc.buildOrder(v.Row.Latitude, v.Row.Longitude, v.Row.Subtotal, ts))
	}

	imported, err := uc.repo.CreateBatch(ctx, orders)
	if err != nil {
		return nil, err
	}
	return &dto.ImportResponse{
		BatchID:      uuid.New().String(),
		Imported:     imported,
		ValidCount:   summary.Valid,
		InvalidCount: summary.Invalid,
		InvalidRows:  invalid,
	}, nil
}

// ExportCSV serializa la colección completa a CSV, la más reciente primero.
func (uc *OrderUseCase) ExportCSV(ctx context.Context) ([]byte, error) {
	orders, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return OrdersToCSV(orders)
}

// OrdersToCSV serializa órdenes a CSV en el orden recibido. Las jurisdicciones
// se aplanan con ";" para caber en una celda. También lo usa la herramienta de
// export contra una instancia remota.
func OrdersToCSV(orders []entity.Order) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"id", "latitude", "longitude", "subtotal", "tax_rate", "tax_amount",
		"total", "jurisdictions", "status", "reporting_code", "timestamp",
	})
	for _, o := range orders {
		_ = w.Write([]string{
			strconv.Itoa(o.ID),
			strconv.FormatFloat(o.Latitude, 'f', -1, 64),
			strconv.FormatFloat(o.Longitude, 'f', -1, 64),
			o.Subtotal.StringFixed(2),
			o.CompositeTaxRate.String(),
			o.TaxAmount.StringFixed(2),
			o.TotalAmount.StringFixed(2),
			strings.Join(o.Jurisdictions.Labels(), ";"),
			string(o.Status),
			o.ReportingCode,
			o.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (uc *OrderUseCase) buildOrder(lat, lon float64, subtotal decimal.Decimal, timestamp time.Time) entity.Order {
	result := uc.calc.Calculate(lat, lon, subtotal)
	return entity.Order{
		Latitude:         lat,
		Longitude:        lon,
		Subtotal:         subtotal.Round(2),
		CompositeTaxRate: result.CompositeRate,
		TaxAmount:        result.TaxAmount,
		TotalAmount:      result.TotalAmount,
		Breakdown:        result.Breakdown,
		Jurisdictions:    result.Jurisdictions,
		Status:           result.Status,
		ReportingCode:    result.ReportingCode,
		Timestamp:        timestamp,
	}
}
