// Package query implementa el motor de consultas sobre la colección de
// órdenes: filtros AND-combinados, ordenamiento estable y paginación por
// slicing, en ese orden fijo. Todas las operaciones son puras: trabajan sobre
// la instantánea recibida y nunca la mutan.
package query

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/delivery-tax-api/internal/application/dto"
	"github.com/jhoicas/delivery-tax-api/internal/domain/entity"
)

// Engine aplica el pipeline filtrar → ordenar → paginar.
type Engine struct{}

// NewEngine construye el motor.
func NewEngine() *Engine {
	return &Engine{}
}

// Query ejecuta el pipeline completo y devuelve la página pedida con sus
// metadatos exactos. Una página fuera de rango produce data vacía con meta
// correcta, nunca un error.
func (e *Engine) Query(orders []entity.Order, page, pageSize int, filters dto.OrderFilters) ([]entity.Order, dto.PageMeta) {
	filtered := e.Filter(orders, filters)
	e.Sort(filtered, filters.SortBy, filters.SortOrder)
	return e.Paginate(filtered, page, pageSize)
}

// Filter aplica los predicados opcionales (AND). Campo ausente = sin restricción.
func (e *Engine) Filter(orders []entity.Order, f dto.OrderFilters) []entity.Order {
	result := make([]entity.Order, 0, len(orders))
	search := strings.ToLower(strings.TrimSpace(f.Search))

	for _, o := range orders {
		if search != "" && !matchesSearch(o, search) {
			continue
		}
		// Rango de fechas inclusivo en ambos extremos.
		if f.FromDate != nil && o.Timestamp.Before(*f.FromDate) {
			continue
		}
		if f.ToDate != nil && o.Timestamp.After(*f.ToDate) {
			continue
		}
		// Rango de monto inclusivo sobre el subtotal.
		if f.AmountMin != nil && o.Subtotal.LessThan(*f.AmountMin) {
			continue
		}
		if f.AmountMax != nil && o.Subtotal.GreaterThan(*f.AmountMax) {
			continue
		}
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		if f.ReportingCode != "" && o.ReportingCode != f.ReportingCode {
			continue
		}
		result = append(result, o)
	}
	return result
}

// matchesSearch búsqueda de texto libre, case-insensitive, por substring,
// sobre id-como-texto, condado y ciudad.
func matchesSearch(o entity.Order, search string) bool {
	if strings.Contains(strconv.Itoa(o.ID), search) {
		return true
	}
	if strings.Contains(strings.ToLower(o.Jurisdictions.County), search) {
		return true
	}
	return strings.Contains(strings.ToLower(o.Jurisdictions.City), search)
}

// Sort ordena in-place de forma ESTABLE: órdenes con clave igual conservan su
// orden relativo original. Campos string comparan con collation inglesa
// case-insensitive; numéricos comparan numéricamente. Un sort_by desconocido
// cae al default (timestamp descendente) en lugar de fallar.
func (e *Engine) Sort(orders []entity.Order, sortBy, sortOrder string) {
	less := lessFunc(sortBy)
	if sortOrder == "" {
		sortOrder = dto.SortOrderDesc
	}
	if sortOrder == dto.SortOrderDesc {
		inner := less
		less = func(a, b entity.Order) bool { return inner(b, a) }
	}
	sort.SliceStable(orders, func(i, j int) bool { return less(orders[i], orders[j]) })
}

func lessFunc(sortBy string) func(a, b entity.Order) bool {
	switch sortBy {
	case dto.SortByID:
		return func(a, b entity.Order) bool { return a.ID < b.ID }
	case dto.SortBySubtotal:
		return func(a, b entity.Order) bool { return a.Subtotal.LessThan(b.Subtotal) }
	case dto.SortByTaxAmount:
		return func(a, b entity.Order) bool { return a.TaxAmount.LessThan(b.TaxAmount) }
	case dto.SortByTotalAmount:
		return func(a, b entity.Order) bool { return a.TotalAmount.LessThan(b.TotalAmount) }
	case dto.SortByCompositeRate:
		return func(a, b entity.Order) bool { return a.CompositeTaxRate.LessThan(b.CompositeTaxRate) }
	case dto.SortByCounty:
		return stringLess(func(o entity.Order) string { return o.Jurisdictions.County })
	case dto.SortByCity:
		return stringLess(func(o entity.Order) string { return o.Jurisdictions.City })
	case dto.SortByStatus:
		return stringLess(func(o entity.Order) string { return string(o.Status) })
	case dto.SortByReportingCode:
		return stringLess(func(o entity.Order) string { return o.ReportingCode })
	default:
		// Incluye SortByTimestamp y cualquier campo desconocido.
		return func(a, b entity.Order) bool { return a.Timestamp.Before(b.Timestamp) }
	}
}

// stringLess comparación con collation. El collator no es seguro para uso
// concurrente, por eso se crea uno por ordenamiento.
func stringLess(key func(entity.Order) string) func(a, b entity.Order) bool {
	c := collate.New(language.English, collate.IgnoreCase)
	return func(a, b entity.Order) bool {
		return c.CompareString(key(a), key(b)) < 0
	}
}

// Paginate corta la página [(page-1)*pageSize, page*pageSize) y calcula meta.
func (e *Engine) Paginate(orders []entity.Order, page, pageSize int) ([]entity.Order, dto.PageMeta) {
	total := len(orders)
	meta := dto.NewPageMeta(page, pageSize, total)

	start := (page - 1) * pageSize
	if start >= total {
		return []entity.Order{}, meta
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return orders[start:end], meta
}
