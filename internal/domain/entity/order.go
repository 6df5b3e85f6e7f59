package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden según si su coordenada cae dentro del estado de NY.
type OrderStatus string

const (
	// OrderStatusCompleted la orden resolvió a una jurisdicción y tiene impuestos calculados.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusOutOfScope la coordenada cae fuera del rectángulo del estado:
	// sin impuestos, total = subtotal, código de reporte "OOS".
	OrderStatusOutOfScope OrderStatus = "out_of_scope"
)

// OutOfScopeReportingCode código de reporte fijo para órdenes fuera del estado.
const OutOfScopeReportingCode = "OOS"

// TaxBreakdown los cuatro componentes individuales de tasa adjuntos a una orden tasada.
type TaxBreakdown struct {
	StateRate   decimal.Decimal `json:"state_rate"`
	CountyRate  decimal.Decimal `json:"county_rate"`
	CityRate    decimal.Decimal `json:"city_rate"`
	SpecialRate decimal.Decimal `json:"special_rate"`
}

// Sum suma de los cuatro componentes; por construcción igual a CompositeTaxRate.
func (b TaxBreakdown) Sum() decimal.Decimal {
	return b.StateRate.Add(b.CountyRate).Add(b.CityRate).Add(b.SpecialRate)
}

// JurisdictionInfo descriptor estructurado de jurisdicciones de una orden.
// Forma canónica elegida: objeto {state, county, city, special_districts};
// la lista plana de etiquetas se deriva con Labels().
type JurisdictionInfo struct {
	State            string   `json:"state"`
	County           string   `json:"county"`
	City             string   `json:"city"`
	SpecialDistricts []string `json:"special_districts"`
}

// Labels deriva la lista ordenada de etiquetas:
// ["New York", "<County> County", "<City>", ...distritos especiales].
// Es la forma que consumen la búsqueda de texto libre y el export CSV.
func (j JurisdictionInfo) Labels() []string {
	labels := make([]string, 0, 3+len(j.SpecialDistricts))
	if j.State != "" {
		labels = append(labels, j.State)
	}
	if j.County != "" {
		labels = append(labels, j.County+" County")
	}
	if j.City != "" {
		labels = append(labels, j.City)
	}
	labels = append(labels, j.SpecialDistricts...)
	return labels
}

// Order entidad central: una orden de delivery tasada por ubicación.
// Inmutable tras su creación; solo se destruye con el borrado total de la colección.
type Order struct {
	ID               int              `json:"id"`
	Latitude         float64          `json:"latitude"`
	Longitude        float64          `json:"longitude"`
	Subtotal         decimal.Decimal  `json:"subtotal"`
	CompositeTaxRate decimal.Decimal  `json:"composite_tax_rate"`
	TaxAmount        decimal.Decimal  `json:"tax_amount"`
	TotalAmount      decimal.Decimal  `json:"total_amount"`
	Breakdown        TaxBreakdown     `json:"breakdown"`
	Jurisdictions    JurisdictionInfo `json:"jurisdictions"`
	Status           OrderStatus      `json:"status"`
	ReportingCode    string           `json:"reporting_code"`
	Timestamp        time.Time        `json:"timestamp"`
}
