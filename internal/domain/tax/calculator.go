package tax

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/delivery-tax-api/internal/domain/entity"
)

// Result resultado completo del cálculo de impuestos para una coordenada y subtotal.
type Result struct {
	CompositeRate decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	Breakdown     entity.TaxBreakdown
	Jurisdictions entity.JurisdictionInfo
	Status        entity.OrderStatus
	ReportingCode string
}

// Calculator calcula el impuesto compuesto de una orden. Función pura de sus
// entradas: sin efectos secundarios y determinista.
type Calculator struct {
	resolver *Resolver
}

// NewCalculator construye el calculador sobre un resolver de jurisdicciones.
func NewCalculator(resolver *Resolver) *Calculator {
	return &Calculator{resolver: resolver}
}

// Calculate resuelve la jurisdicción y calcula tasa compuesta, impuesto y total.
//
// Redondeo: a 2 decimales con mitad-hacia-arriba en el límite del centavo
// (decimal.Round redondea mitades alejándose de cero, que para montos no
// negativos equivale a mitad-hacia-arriba; NO se usa redondeo bancario).
// Subtotal 0 produce impuesto 0 y total 0 sin error. Un subtotal negativo es
// un error de validación del caller y no se maneja aquí.
//
// Coordenadas fuera del rectángulo del estado producen un resultado
// out_of_scope: sin impuestos, total = subtotal y código de reporte "OOS".
func (c *Calculator) Calculate(lat, lon float64, subtotal decimal.Decimal) Result {
	if !InState(lat, lon) {
		return Result{
			CompositeRate: decimal.Zero,
			TaxAmount:     decimal.Zero,
			TotalAmount:   subtotal.Round(2),
			Breakdown: entity.TaxBreakdown{
				StateRate:   decimal.Zero,
				CountyRate:  decimal.Zero,
				CityRate:    decimal.Zero,
				SpecialRate: decimal.Zero,
			},
			Jurisdictions: entity.JurisdictionInfo{SpecialDistricts: []string{}},
			Status:        entity.OrderStatusOutOfScope,
			ReportingCode: entity.OutOfScopeReportingCode,
		}
	}

	j := c.resolver.Resolve(lat, lon)
	rate := j.CompositeRate()
	taxAmount := subtotal.Mul(rate).Round(2)
	totalAmount := subtotal.Add(taxAmount).Round(2)

	return Result{
		CompositeRate: rate,
		TaxAmount:     taxAmount,
		TotalAmount:   totalAmount,
		Breakdown: entity.TaxBreakdown{
			StateRate:   j.StateRate,
			CountyRate:  j.CountyRate,
			CityRate:    j.CityRate,
			SpecialRate: j.SpecialRate,
		},
		Jurisdictions: entity.JurisdictionInfo{
			State:            StateName,
			County:           j.County,
			City:             j.City,
			SpecialDistricts: j.SpecialDistricts,
		},
		Status:        entity.OrderStatusCompleted,
		ReportingCode: j.ReportingCode,
	}
}
