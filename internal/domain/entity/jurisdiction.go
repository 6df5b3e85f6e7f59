package entity

import "github.com/shopspring/decimal"

// Jurisdiction autoridad tributaria con sus cuatro componentes aditivos de tasa.
// Los registros son inmutables: se cargan una vez al inicio y nunca se mutan.
type Jurisdiction struct {
	County           string
	City             string
	StateRate        decimal.Decimal
	CountyRate       decimal.Decimal
	CityRate         decimal.Decimal
	SpecialRate      decimal.Decimal
	SpecialDistricts []string
	ReportingCode    string
}

// CompositeRate suma simple de los cuatro componentes (sin topes).
func (j Jurisdiction) CompositeRate() decimal.Decimal {
	return j.StateRate.Add(j.CountyRate).Add(j.CityRate).Add(j.SpecialRate)
}

// CountyBounds rectángulo lat/lon que aproxima la extensión geográfica de un condado.
// Solo se usa para resolver coordenadas a una Jurisdiction; nunca se muta tras la carga.
type CountyBounds struct {
	County string
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// Contains indica si el punto cae dentro del rectángulo (bordes inclusivos).
func (b CountyBounds) Contains(lat, lon float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lon >= b.LonMin && lon <= b.LonMax
}
