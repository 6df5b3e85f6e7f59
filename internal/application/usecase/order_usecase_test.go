package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/delivery-tax-api/internal/application/dto"
	"github.com/jhoicas/delivery-tax-api/internal/application/query"
	"github.com/jhoicas/delivery-tax-api/internal/application/usecase"
	"github.com/jhoicas/delivery-tax-api/internal/domain"
	"github.com/jhoicas/delivery-tax-api/internal/domain/tax"
	"github.com/jhoicas/delivery-tax-api/internal/infrastructure/memory"
)

func newOrderUseCase() *usecase.OrderUseCase {
	calc := tax.NewCalculator(tax.NewResolver())
	return usecase.NewOrderUseCase(memory.NewOrderRepository(), calc, query.NewEngine())
}

func floatPtr(f float64) *float64 { return &f }

func decimalPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := decimal.RequireFromString(s)
	return &d
}

func manhattanRequest(t *testing.T, subtotal string) dto.CreateOrderRequest {
	t.Helper()
	return dto.CreateOrderRequest{
		Latitude:  floatPtr(40.78),
		Longitude: floatPtr(-73.96),
		Subtotal:  decimalPtr(t, subtotal),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderCreate_CalculaYPersiste(t *testing.T) {
	uc := newOrderUseCase()
	ctx := context.Background()

	order, err := uc.Create(ctx, manhattanRequest(t, "100.00"))
	require.NoError(t, err)

	assert.Equal(t, 1, order.ID)
	assert.Equal(t, "0.08875", order.CompositeTaxRate.String())
	assert.Equal(t, "8.88", order.TaxAmount.StringFixed(2))
	assert.Equal(t, "108.88", order.TotalAmount.StringFixed(2))
	assert.Equal(t, "New York", order.Jurisdictions.County)
	assert.False(t, order.Timestamp.IsZero(), "sin timestamp explícito se usa ahora")
}

func TestOrderCreate_TimestampExplicito(t *testing.T) {
	uc := newOrderUseCase()
	in := manhattanRequest(t, "50.00")
	in.Timestamp = "2024-03-10T12:00:00Z"

	order, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 2024, order.Timestamp.Year())
}

// La validación enumera todos los campos inválidos, no solo el primero.
func TestOrderCreate_EnumeraTodosLosCamposInvalidos(t *testing.T) {
	uc := newOrderUseCase()

	_, err := uc.Create(context.Background(), dto.CreateOrderRequest{
		Latitude:  floatPtr(50.0),              // fuera de [40.4, 45.1]
		Longitude: floatPtr(-100.0),            // fuera de [-79.8, -71.8]
		Subtotal:  decimalPtr(t, "20000"),      // fuera de [0.01, 10000]
		Timestamp: "no-es-fecha",
	})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 4)
	assert.Contains(t, verr.Fields, "latitude")
	assert.Contains(t, verr.Fields, "longitude")
	assert.Contains(t, verr.Fields, "subtotal")
	assert.Contains(t, verr.Fields, "timestamp")
}

func TestOrderCreate_CamposRequeridos(t *testing.T) {
	uc := newOrderUseCase()

	_, err := uc.Create(context.Background(), dto.CreateOrderRequest{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests List
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderList_DefaultsYTope(t *testing.T) {
	uc := newOrderUseCase()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := uc.Create(ctx, manhattanRequest(t, "10.00"))
		require.NoError(t, err)
	}

	// page y pageSize inválidos caen a los defaults.
	resp, err := uc.List(ctx, 0, 0, dto.OrderFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, usecase.DefaultPageSize, resp.Meta.PageSize)
	assert.Len(t, resp.Data, usecase.DefaultPageSize)
	assert.Equal(t, 25, resp.Meta.Total)

	// pageSize por encima del máximo se recorta al tope.
	resp, err = uc.List(ctx, 1, 1000, dto.OrderFilters{})
	require.NoError(t, err)
	assert.Equal(t, usecase.MaxPageSize, resp.Meta.PageSize)
	assert.Len(t, resp.Data, 25)
}

func TestOrderGetByID_NoExiste(t *testing.T) {
	uc := newOrderUseCase()

	_, err := uc.GetByID(context.Background(), 42)
	assert.True(t, errors.Is(err, domain.ErrOrderNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ImportCSV
// ──────────────────────────────────────────────────────────────────────────────

func TestImportCSV_ConfirmaSoloLasValidas(t *testing.T) {
	uc := newOrderUseCase()
	ctx := context.Background()

	text := "id,longitude,latitude,timestamp,subtotal\n" +
		"1,-73.96,40.78,2024-01-15 10:30:00,100.00\n" +
		"2,-200,40.75,2024-01-15 11:00:00,50.00\n" + // longitude fuera de rango
		"3,-73.55,40.75,2024-01-15 12:00:00,200.00\n"

	resp, err := uc.ImportCSV(ctx, text)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.BatchID)
	assert.Equal(t, 2, resp.ValidCount)
	assert.Equal(t, 1, resp.InvalidCount)
	require.Len(t, resp.Imported, 2)
	require.Len(t, resp.InvalidRows, 1)
	assert.Contains(t, resp.InvalidRows[0].Errors, "longitude debe estar entre -180 y 180")

	// El store asigna sus propios IDs secuenciales; el id del CSV es referencial.
	assert.Equal(t, 1, resp.Imported[0].ID)
	assert.Equal(t, 2, resp.Imported[1].ID)

	all, err := uc.GetAll(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2, "las filas inválidas no se persisten")
}

// Coordenadas válidas pero fuera del estado importan como out_of_scope.
func TestImportCSV_FueraDelEstado(t *testing.T) {
	uc := newOrderUseCase()

	text := "id,longitude,latitude,timestamp,subtotal\n" +
		"1,-118.24,34.05,2024-01-15 10:30:00,100.00\n"

	resp, err := uc.ImportCSV(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, resp.Imported, 1)
	assert.Equal(t, "out_of_scope", string(resp.Imported[0].Status))
	assert.Equal(t, "OOS", resp.Imported[0].ReportingCode)
	assert.Equal(t, "100.00", resp.Imported[0].TotalAmount.StringFixed(2))
}

func TestImportCSV_ArchivoVacio(t *testing.T) {
	uc := newOrderUseCase()

	_, err := uc.ImportCSV(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrEmptyImport))

	_, err = uc.ImportCSV(context.Background(), "id,longitude,latitude,timestamp,subtotal\n")
	assert.True(t, errors.Is(err, domain.ErrEmptyImport))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ClearAll y ExportCSV
// ──────────────────────────────────────────────────────────────────────────────

func TestClearAll(t *testing.T) {
	uc := newOrderUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, manhattanRequest(t, "10.00"))
	require.NoError(t, err)
	require.NoError(t, uc.ClearAll(ctx))

	all, err := uc.GetAll(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExportCSV(t *testing.T) {
	uc := newOrderUseCase()
	ctx := context.Background()

	in := manhattanRequest(t, "100.00")
	in.Timestamp = "2024-03-10T12:00:00Z"
	_, err := uc.Create(ctx, in)
	require.NoError(t, err)

	out, err := uc.ExportCSV(ctx)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,latitude,longitude,subtotal,tax_rate,tax_amount,total,jurisdictions,status,reporting_code,timestamp", lines[0])
	assert.Contains(t, lines[1], "8.88")
	assert.Contains(t, lines[1], "New York County")
	assert.Contains(t, lines[1], ";")
	assert.Contains(t, lines[1], "2024-03-10T12:00:00Z")
}
