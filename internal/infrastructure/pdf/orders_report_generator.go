// Package pdf implementa la generación del reporte de órdenes en PDF usando
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: # órdenes / Impuesto total / Monto total          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Fecha | Condado | Tasa | Subtotal | Imp | Total│
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/delivery-tax-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// OrdersReportGenerator genera el reporte de órdenes con Maroto v2.
type OrdersReportGenerator struct{}

// NewOrdersReportGenerator construye el generador.
func NewOrdersReportGenerator() *OrdersReportGenerator { return &OrdersReportGenerator{} }

// GenerateOrdersReport genera el PDF y devuelve sus bytes. Las órdenes se
// renderizan en el orden recibido (la más reciente primero).
func (g *OrdersReportGenerator) GenerateOrdersReport(orders []entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Órdenes", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(orders))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableOrderRows(orders) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")

	return row.New(14).Add(
		col.New(7).Add(
			text.New("REPORTE DE ÓRDENES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Impuestos de delivery por jurisdicción (NY)", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRow: conteo de órdenes y sumas de impuesto y total.
func summaryRow(orders []entity.Order) core.Row {
	taxTotal := decimal.Zero
	grandTotal := decimal.Zero
	outOfScope := 0
	for _, o := range orders {
		taxTotal = taxTotal.Add(o.TaxAmount)
		grandTotal = grandTotal.Add(o.TotalAmount)
		if o.Status == entity.OrderStatusOutOfScope {
			outOfScope++
		}
	}

	stat := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(value, props.Text{Size: 10, Top: 6}),
		)
	}

	return row.New(13).Add(
		stat("ÓRDENES", fmt.Sprintf("%d", len(orders))),
		stat("FUERA DE ALCANCE", fmt.Sprintf("%d", outOfScope)),
		stat("IMPUESTO TOTAL", "$"+taxTotal.StringFixed(2)),
		stat("MONTO TOTAL", "$"+grandTotal.StringFixed(2)),
	)
}

// tableHeaderRow: cabecera de la tabla de órdenes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Center),
		h("Fecha", 2, align.Left),
		h("Condado", 2, align.Left),
		h("Tasa", 1, align.Right),
		h("Subtotal", 2, align.Right),
		h("Impuesto", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableOrderRows: una fila por orden.
func tableOrderRows(orders []entity.Order) []core.Row {
	result := make([]core.Row, 0, len(orders))
	for _, o := range orders {
		county := o.Jurisdictions.County
		if o.Status == entity.OrderStatusOutOfScope {
			county = "Fuera de NY"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", o.ID),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				o.Timestamp.Format("02/01/2006 15:04"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				county,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				o.CompositeTaxRate.Mul(decimal.NewFromInt(100)).StringFixed(3)+"%",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+o.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+o.TaxAmount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+o.TotalAmount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}
