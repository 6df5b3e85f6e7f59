package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/delivery-tax-api/internal/domain/entity"
)

// CreateOrderRequest payload para crear una orden manual.
// Los campos numéricos son punteros para distinguir "ausente" de "cero" y
// poder reportar cada campo faltante por separado.
type CreateOrderRequest struct {
	Latitude  *float64         `json:"latitude"`
	Longitude *float64         `json:"longitude"`
	Subtotal  *decimal.Decimal `json:"subtotal"`
	Timestamp string           `json:"timestamp"` // RFC3339 opcional; default: ahora
}

// Campos de ordenamiento soportados por el listado. Un sort_by desconocido
// cae al default (timestamp) en lugar de fallar.
const (
	SortByTimestamp     = "timestamp"
	SortByID            = "id"
	SortBySubtotal      = "subtotal"
	SortByTaxAmount     = "tax_amount"
	SortByTotalAmount   = "total_amount"
	SortByCompositeRate = "composite_tax_rate"
	SortByCounty        = "county"
	SortByCity          = "city"
	SortByStatus        = "status"
	SortByReportingCode = "reporting_code"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// OrderFilters bolsa de predicados opcionales para el listado.
// Todos los campos son opcionales; campo ausente = sin restricción.
// Los predicados se combinan con AND. Los rangos de fecha y monto son
// inclusivos en ambos extremos; el rango de monto aplica sobre el subtotal
// (el campo monetario principal de la orden).
type OrderFilters struct {
	Search        string
	FromDate      *time.Time
	ToDate        *time.Time
	AmountMin     *decimal.Decimal
	AmountMax     *decimal.Decimal
	Status        string
	ReportingCode string
	SortBy        string
	SortOrder     string
}

// OrderListResponse respuesta paginada del listado de órdenes.
type OrderListResponse struct {
	Data []entity.Order `json:"data"`
	Meta PageMeta       `json:"meta"`
}

// InvalidRow fila CSV rechazada, con sus valores coercionados a mejor esfuerzo
// (coerciones fallidas quedan en 0) y la lista completa de errores de campo.
type InvalidRow struct {
	ID        int             `json:"id"`
	Longitude float64         `json:"longitude"`
	Latitude  float64         `json:"latitude"`
	Timestamp string          `json:"timestamp"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Errors    []string        `json:"errors"`
}

// ImportResponse resultado del import CSV: solo las filas válidas se
// confirman; las inválidas se devuelven para revisión, nunca se descartan.
type ImportResponse struct {
	BatchID      string         `json:"batch_id"`
	Imported     []entity.Order `json:"imported"`
	ValidCount   int            `json:"valid_count"`
	InvalidCount int            `json:"invalid_count"`
	InvalidRows  []InvalidRow   `json:"invalid_rows"`
}
