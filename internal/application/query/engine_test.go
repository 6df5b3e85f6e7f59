package query_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/delivery-tax-api/internal/application/dto"
	"github.com/jhoicas/delivery-tax-api/internal/application/query"
	"github.com/jhoicas/delivery-tax-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// buildOrder orden mínima para el motor: id, condado, subtotal y timestamp desplazado.
func buildOrder(id int, county string, subtotal float64, offsetMin int) entity.Order {
	return entity.Order{
		ID:       id,
		Subtotal: decimal.NewFromFloat(subtotal),
		Jurisdictions: entity.JurisdictionInfo{
			State:  "New York",
			County: county,
		},
		Status:        entity.OrderStatusCompleted,
		ReportingCode: "NY-" + county,
		Timestamp:     baseTime.Add(time.Duration(offsetMin) * time.Minute),
	}
}

func sampleOrders() []entity.Order {
	return []entity.Order{
		buildOrder(1, "New York", 100, 0),
		buildOrder(2, "Nassau", 50, 10),
		buildOrder(3, "Erie", 200, 20),
		buildOrder(4, "Nassau", 75, 30),
		buildOrder(5, "Albany", 125, 40),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtros
// ──────────────────────────────────────────────────────────────────────────────

func TestFilter_BusquedaTextoLibre(t *testing.T) {
	e := query.NewEngine()

	// Por condado, case-insensitive.
	got := e.Filter(sampleOrders(), dto.OrderFilters{Search: "nassau"})
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 4, got[1].ID)

	// Por id como texto.
	got = e.Filter(sampleOrders(), dto.OrderFilters{Search: "3"})
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}

func TestFilter_RangoFechasInclusivo(t *testing.T) {
	e := query.NewEngine()
	from := baseTime.Add(10 * time.Minute)
	to := baseTime.Add(30 * time.Minute)

	got := e.Filter(sampleOrders(), dto.OrderFilters{FromDate: &from, ToDate: &to})
	require.Len(t, got, 3, "ambos extremos del rango son inclusivos")
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 4, got[2].ID)
}

func TestFilter_RangoMontoInclusivoSobreSubtotal(t *testing.T) {
	e := query.NewEngine()
	min := decimal.NewFromInt(75)
	max := decimal.NewFromInt(125)

	got := e.Filter(sampleOrders(), dto.OrderFilters{AmountMin: &min, AmountMax: &max})
	require.Len(t, got, 3)
	for _, o := range got {
		assert.True(t, o.Subtotal.GreaterThanOrEqual(min))
		assert.True(t, o.Subtotal.LessThanOrEqual(max))
	}
}

func TestFilter_StatusYReportingCode(t *testing.T) {
	e := query.NewEngine()
	orders := sampleOrders()
	orders[2].Status = entity.OrderStatusOutOfScope
	orders[2].ReportingCode = entity.OutOfScopeReportingCode

	got := e.Filter(orders, dto.OrderFilters{Status: string(entity.OrderStatusOutOfScope)})
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)

	got = e.Filter(orders, dto.OrderFilters{ReportingCode: "NY-Albany"})
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].ID)
}

func TestFilter_SinFiltros_DevuelveTodo(t *testing.T) {
	e := query.NewEngine()
	got := e.Filter(sampleOrders(), dto.OrderFilters{})
	assert.Len(t, got, len(sampleOrders()))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ordenamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestSort_DefaultTimestampDescendente(t *testing.T) {
	e := query.NewEngine()
	orders := sampleOrders()

	e.Sort(orders, "", "")
	assert.Equal(t, 5, orders[0].ID, "la orden más reciente va primero")
	assert.Equal(t, 1, orders[len(orders)-1].ID)
}

func TestSort_CampoDesconocido_CaeAlDefault(t *testing.T) {
	e := query.NewEngine()
	orders := sampleOrders()

	e.Sort(orders, "no_existe", dto.SortOrderDesc)
	assert.Equal(t, 5, orders[0].ID, "sort_by desconocido debe ordenar por timestamp")
}

func TestSort_NumericoAscendente(t *testing.T) {
	e := query.NewEngine()
	orders := sampleOrders()

	e.Sort(orders, dto.SortBySubtotal, dto.SortOrderAsc)
	prev := decimal.Zero
	for _, o := range orders {
		assert.True(t, o.Subtotal.GreaterThanOrEqual(prev))
		prev = o.Subtotal
	}
}

func TestSort_StringPorCondado(t *testing.T) {
	e := query.NewEngine()
	orders := sampleOrders()

	e.Sort(orders, dto.SortByCounty, dto.SortOrderAsc)
	assert.Equal(t, "Albany", orders[0].Jurisdictions.County)
	assert.Equal(t, "New York", orders[len(orders)-1].Jurisdictions.County)
}

// Estabilidad: órdenes con clave igual conservan su orden relativo original.
func TestSort_Estable(t *testing.T) {
	e := query.NewEngine()
	orders := []entity.Order{
		buildOrder(1, "Nassau", 100, 0),
		buildOrder(2, "Nassau", 100, 0),
		buildOrder(3, "Nassau", 100, 0),
	}

	e.Sort(orders, dto.SortBySubtotal, dto.SortOrderAsc)
	assert.Equal(t, []int{orders[0].ID, orders[1].ID, orders[2].ID}, []int{1, 2, 3},
		"claves iguales deben conservar el orden original")

	e.Sort(orders, dto.SortByCounty, dto.SortOrderDesc)
	assert.Equal(t, []int{orders[0].ID, orders[1].ID, orders[2].ID}, []int{1, 2, 3})
}

// ──────────────────────────────────────────────────────────────────────────────
// Paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestPaginate_MetaExacta(t *testing.T) {
	e := query.NewEngine()

	data, meta := e.Paginate(sampleOrders(), 1, 2)
	assert.Len(t, data, 2)
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 3, meta.TotalPages, "totalPages = ceil(5/2) = 3")

	data, meta = e.Paginate(sampleOrders(), 3, 2)
	assert.Len(t, data, 1, "la última página lleva el resto")
	assert.Equal(t, 3, meta.TotalPages)
}

func TestPaginate_PaginaFueraDeRango_VaciaSinError(t *testing.T) {
	e := query.NewEngine()

	data, meta := e.Paginate(sampleOrders(), 10, 2)
	assert.Empty(t, data)
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 10, meta.Page, "la meta refleja la página pedida")
}

func TestPaginate_ColeccionVacia(t *testing.T) {
	e := query.NewEngine()

	data, meta := e.Paginate([]entity.Order{}, 1, 20)
	assert.Empty(t, data)
	assert.Equal(t, 0, meta.Total)
	assert.Equal(t, 0, meta.TotalPages, "totalPages = 0 cuando total = 0")
}

// Propiedad: la suma de los tamaños de todas las páginas iguala el total filtrado.
func TestQuery_SumaDePaginasIgualaTotal(t *testing.T) {
	e := query.NewEngine()

	var orders []entity.Order
	for i := 1; i <= 23; i++ {
		orders = append(orders, buildOrder(i, fmt.Sprintf("County-%02d", i%4), float64(i*10), i))
	}

	const pageSize = 5
	_, meta := e.Query(orders, 1, pageSize, dto.OrderFilters{})
	require.Equal(t, 23, meta.Total)
	require.Equal(t, 5, meta.TotalPages)

	seen := 0
	for page := 1; page <= meta.TotalPages; page++ {
		data, _ := e.Query(orders, page, pageSize, dto.OrderFilters{})
		seen += len(data)
	}
	assert.Equal(t, meta.Total, seen, "la suma de páginas debe igualar el total")
}
