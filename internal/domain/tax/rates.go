// Package tax implementa la determinación de jurisdicción por coordenada y el
// cálculo del impuesto compuesto para el estado de New York.
//
// La tabla de tasas y los rectángulos por condado son datos de referencia
// fijos: se cargan una vez y nunca se mutan. La resolución geográfica usa una
// lista ORDENADA de rectángulos con regla primer-match-gana; el orden de la
// lista es parte del contrato (ver resolver.go).
package tax

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/delivery-tax-api/internal/domain/entity"
)

// StateName nombre del estado emisor; primera etiqueta de toda jurisdicción resuelta.
const StateName = "New York"

// Rectángulo aproximado del estado de NY. Coordenadas fuera de él producen
// órdenes out_of_scope (sin impuestos), no un error.
const (
	StateLatMin = 40.4
	StateLatMax = 45.1
	StateLonMin = -79.8
	StateLonMax = -71.8
)

// InState indica si la coordenada cae dentro del rectángulo del estado (bordes inclusivos).
func InState(lat, lon float64) bool {
	return lat >= StateLatMin && lat <= StateLatMax && lon >= StateLonMin && lon <= StateLonMax
}

// FallbackCounty condado sintético para coordenadas dentro del estado que no
// caen en ningún rectángulo de condado listado.
const FallbackCounty = "Other"

var stateRate = decimal.NewFromFloat(0.04)

// jd construye una jurisdicción con la tasa estatal fija y un código de
// reporte derivado del nombre del condado.
func jd(county, city string, countyRate, specialRate float64, districts ...string) entity.Jurisdiction {
	if districts == nil {
		districts = []string{}
	}
	return entity.Jurisdiction{
		County:           county,
		City:             city,
		StateRate:        stateRate,
		CountyRate:       decimal.NewFromFloat(countyRate),
		CityRate:         decimal.Zero,
		SpecialRate:      decimal.NewFromFloat(specialRate),
		SpecialDistricts: districts,
		ReportingCode:    reportingCode(county),
	}
}

// jdNYC jurisdicción de un borough de NYC: la tasa local del 4.5% es impuesto
// de la ciudad, no del condado, y los cinco boroughs comparten el MCTD.
func jdNYC(county string) entity.Jurisdiction {
	j := jd(county, "New York City", 0, 0.00375, "MCTD")
	j.CityRate = decimal.NewFromFloat(0.045)
	return j
}

// reportingCode deriva un código estable tipo "NY-NEW-YORK" a partir del condado.
func reportingCode(county string) string {
	code := strings.ToUpper(county)
	code = strings.ReplaceAll(code, ".", "")
	code = strings.ReplaceAll(code, " ", "-")
	return "NY-" + code
}

// jurisdictions tasas compuestas por condado (NY State Sales Tax, aproximación).
// Los cinco condados de NYC comparten tasa de ciudad y el distrito MCTD.
var jurisdictions = []entity.Jurisdiction{
	jdNYC("New York"),
	jdNYC("Kings"),
	jdNYC("Queens"),
	jdNYC("Bronx"),
	jdNYC("Richmond"),
	jd("Nassau", "", 0.04625, 0),
	jd("Suffolk", "", 0.04625, 0),
	jd("Westchester", "", 0.0375, 0.005, "MCTD"),
	jd("Rockland", "", 0.04, 0.00375, "MCTD"),
	jd("Orange", "", 0.0375, 0.00375, "MCTD"),
	jd("Dutchess", "", 0.0375, 0.00375, "MCTD"),
	jd("Putnam", "", 0.04, 0.00375, "MCTD"),
	jd("Erie", "", 0.04, 0),
	jd("Monroe", "", 0.04, 0),
	jd("Onondaga", "", 0.04, 0),
	jd("Albany", "", 0.04, 0),
	jd("Oneida", "", 0.0375, 0),
	jd("Niagara", "", 0.04, 0),
	jd("Saratoga", "", 0.03, 0),
	jd("Broome", "", 0.04, 0),
	jd("Schenectady", "", 0.04, 0),
	jd("Ulster", "", 0.04, 0),
	jd("Rensselaer", "", 0.04, 0),
	jd("Sullivan", "", 0.04, 0),
	jd("Tompkins", "", 0.04, 0),
	jd("Allegany", "", 0.04, 0),
	jd("Cattaraugus", "", 0.04, 0),
	jd("Cayuga", "", 0.04, 0),
	jd("Chautauqua", "", 0.04, 0),
	jd("Chemung", "", 0.04, 0),
	jd("Chenango", "", 0.04, 0),
	jd("Clinton", "", 0.04, 0),
	jd("Columbia", "", 0.04, 0),
	jd("Cortland", "", 0.04, 0),
	jd("Delaware", "", 0.04, 0),
	jd("Essex", "", 0.04, 0),
	jd("Franklin", "", 0.04, 0),
	jd("Fulton", "", 0.04, 0),
	jd("Genesee", "", 0.04, 0),
	jd("Greene", "", 0.04, 0),
	jd("Hamilton", "", 0.04, 0),
	jd("Herkimer", "", 0.04, 0),
	jd("Jefferson", "", 0.04, 0),
	jd("Lewis", "", 0.04, 0),
	jd("Livingston", "", 0.04, 0),
	jd("Madison", "", 0.04, 0),
	jd("Montgomery", "", 0.04, 0),
	jd("Ontario", "", 0.04, 0),
	jd("Orleans", "", 0.04, 0),
	jd("Oswego", "", 0.04, 0),
	jd("Otsego", "", 0.04, 0),
	jd("Schoharie", "", 0.04, 0),
	jd("Schuyler", "", 0.04, 0),
	jd("Seneca", "", 0.04, 0),
	jd("St. Lawrence", "", 0.04, 0),
	jd("Steuben", "", 0.04, 0),
	jd("Tioga", "", 0.04, 0),
	jd("Warren", "", 0.04, 0),
	jd("Washington", "", 0.04, 0),
	jd("Wayne", "", 0.04, 0),
	jd("Wyoming", "", 0.04, 0),
	jd("Yates", "", 0.04, 0),
}

// countyBounds rectángulos por condado, EN ORDEN DE PRIORIDAD. Los bordes
// compartidos entre condados adyacentes se solapan a propósito: el desempate
// es el orden de esta lista, no el rectángulo más específico ni el centroide
// más cercano.
var countyBounds = []entity.CountyBounds{
	{County: "New York", LatMin: 40.700, LatMax: 40.800, LonMin: -74.020, LonMax: -73.934},
	{County: "Kings", LatMin: 40.570, LatMax: 40.700, LonMin: -74.042, LonMax: -73.907},
	{County: "Queens", LatMin: 40.541, LatMax: 40.785, LonMin: -73.907, LonMax: -73.700},
	{County: "Bronx", LatMin: 40.800, LatMax: 40.880, LonMin: -73.934, LonMax: -73.748},
	{County: "Richmond", LatMin: 40.496, LatMax: 40.651, LonMin: -74.255, LonMax: -74.052},
	{County: "Nassau", LatMin: 40.540, LatMax: 40.880, LonMin: -73.700, LonMax: -73.420},
	{County: "Suffolk", LatMin: 40.600, LatMax: 41.170, LonMin: -73.420, LonMax: -71.850},
	{County: "Westchester", LatMin: 40.880, LatMax: 41.200, LonMin: -73.984, LonMax: -73.483},
	{County: "Rockland", LatMin: 41.042, LatMax: 41.150, LonMin: -74.230, LonMax: -73.984},
	{County: "Orange", LatMin: 41.150, LatMax: 41.550, LonMin: -74.770, LonMax: -74.080},
	{County: "Dutchess", LatMin: 41.370, LatMax: 41.880, LonMin: -74.000, LonMax: -73.480},
	{County: "Putnam", LatMin: 41.200, LatMax: 41.370, LonMin: -73.980, LonMax: -73.530},
	{County: "Erie", LatMin: 42.460, LatMax: 43.040, LonMin: -79.060, LonMax: -78.460},
	{County: "Monroe", LatMin: 43.000, LatMax: 43.370, LonMin: -77.980, LonMax: -77.370},
	{County: "Onondaga", LatMin: 42.770, LatMax: 43.230, LonMin: -76.410, LonMax: -75.950},
	{County: "Albany", LatMin: 42.400, LatMax: 42.750, LonMin: -74.270, LonMax: -73.680},
	{County: "Oneida", LatMin: 42.910, LatMax: 43.580, LonMin: -75.870, LonMax: -75.070},
	{County: "Niagara", LatMin: 43.040, LatMax: 43.370, LonMin: -79.070, LonMax: -78.460},
	{County: "Saratoga", LatMin: 42.920, LatMax: 43.260, LonMin: -74.140, LonMax: -73.570},
	{County: "Broome", LatMin: 42.000, LatMax: 42.420, LonMin: -76.120, LonMax: -75.360},
	{County: "Schenectady", LatMin: 42.750, LatMax: 42.920, LonMin: -74.260, LonMax: -73.830},
	{County: "Ulster", LatMin: 41.580, LatMax: 42.080, LonMin: -74.500, LonMax: -74.000},
	{County: "Rensselaer", LatMin: 42.460, LatMax: 42.840, LonMin: -73.680, LonMax: -73.280},
	{County: "Sullivan", LatMin: 41.580, LatMax: 42.000, LonMin: -75.140, LonMax: -74.500},
	{County: "Tompkins", LatMin: 42.260, LatMax: 42.630, LonMin: -76.700, LonMax: -76.240},
	{County: "Allegany", LatMin: 42.000, LatMax: 42.460, LonMin: -78.300, LonMax: -77.700},
	{County: "Cattaraugus", LatMin: 42.000, LatMax: 42.460, LonMin: -79.060, LonMax: -78.300},
	{County: "Cayuga", LatMin: 42.630, LatMax: 43.370, LonMin: -76.700, LonMax: -76.410},
	{County: "Chautauqua", LatMin: 42.000, LatMax: 42.530, LonMin: -79.780, LonMax: -79.060},
	{County: "Chemung", LatMin: 42.000, LatMax: 42.240, LonMin: -76.950, LonMax: -76.400},
	{County: "Chenango", LatMin: 42.420, LatMax: 42.770, LonMin: -75.950, LonMax: -75.360},
	{County: "Clinton", LatMin: 44.570, LatMax: 45.020, LonMin: -74.140, LonMax: -73.280},
	{County: "Columbia", LatMin: 41.880, LatMax: 42.400, LonMin: -73.820, LonMax: -73.280},
	{County: "Cortland", LatMin: 42.420, LatMax: 42.770, LonMin: -76.240, LonMax: -75.950},
	{County: "Delaware", LatMin: 42.000, LatMax: 42.420, LonMin: -75.360, LonMax: -74.700},
	{County: "Essex", LatMin: 43.650, LatMax: 44.570, LonMin: -74.140, LonMax: -73.280},
	{County: "Franklin", LatMin: 44.170, LatMax: 45.010, LonMin: -74.700, LonMax: -74.140},
	{County: "Fulton", LatMin: 42.920, LatMax: 43.200, LonMin: -74.680, LonMax: -74.260},
	{County: "Genesee", LatMin: 42.830, LatMax: 43.040, LonMin: -78.460, LonMax: -77.980},
	{County: "Greene", LatMin: 42.080, LatMax: 42.400, LonMin: -74.500, LonMax: -73.820},
	{County: "Hamilton", LatMin: 43.200, LatMax: 43.870, LonMin: -74.680, LonMax: -74.140},
	{County: "Herkimer", LatMin: 42.910, LatMax: 43.580, LonMin: -75.070, LonMax: -74.680},
	{County: "Jefferson", LatMin: 43.580, LatMax: 44.170, LonMin: -76.450, LonMax: -75.570},
	{County: "Lewis", LatMin: 43.580, LatMax: 44.170, LonMin: -75.570, LonMax: -75.070},
	{County: "Livingston", LatMin: 42.470, LatMax: 42.880, LonMin: -77.980, LonMax: -77.490},
	{County: "Madison", LatMin: 42.770, LatMax: 42.910, LonMin: -75.950, LonMax: -75.360},
	{County: "Montgomery", LatMin: 42.750, LatMax: 42.920, LonMin: -74.680, LonMax: -74.260},
	{County: "Ontario", LatMin: 42.630, LatMax: 43.000, LonMin: -77.490, LonMax: -77.050},
	{County: "Orleans", LatMin: 43.040, LatMax: 43.370, LonMin: -78.460, LonMax: -77.980},
	{County: "Oswego", LatMin: 43.230, LatMax: 43.580, LonMin: -76.410, LonMax: -75.870},
	{County: "Otsego", LatMin: 42.420, LatMax: 42.770, LonMin: -75.360, LonMax: -74.700},
	{County: "Schoharie", LatMin: 42.400, LatMax: 42.750, LonMin: -74.700, LonMax: -74.270},
	{County: "Schuyler", LatMin: 42.240, LatMax: 42.470, LonMin: -76.950, LonMax: -76.700},
	{County: "Seneca", LatMin: 42.730, LatMax: 43.000, LonMin: -77.050, LonMax: -76.700},
	{County: "St. Lawrence", LatMin: 44.170, LatMax: 44.990, LonMin: -75.800, LonMax: -74.700},
	{County: "Steuben", LatMin: 42.000, LatMax: 42.470, LonMin: -77.700, LonMax: -76.950},
	{County: "Tioga", LatMin: 42.000, LatMax: 42.260, LonMin: -76.400, LonMax: -76.120},
	{County: "Warren", LatMin: 43.260, LatMax: 43.650, LonMin: -74.140, LonMax: -73.570},
	{County: "Washington", LatMin: 42.840, LatMax: 43.650, LonMin: -73.570, LonMax: -73.240},
	{County: "Wayne", LatMin: 43.000, LatMax: 43.370, LonMin: -77.370, LonMax: -76.700},
	{County: "Wyoming", LatMin: 42.460, LatMax: 42.830, LonMin: -78.460, LonMax: -78.000},
	{County: "Yates", LatMin: 42.470, LatMax: 42.730, LonMin: -77.050, LonMax: -76.700},
}

// fallbackJurisdiction jurisdicción "Other": tasa estatal + tasa default de condado.
var fallbackJurisdiction = entity.Jurisdiction{
	County:           FallbackCounty,
	City:             "",
	StateRate:        stateRate,
	CountyRate:       decimal.NewFromFloat(0.04),
	CityRate:         decimal.Zero,
	SpecialRate:      decimal.Zero,
	SpecialDistricts: []string{},
	ReportingCode:    reportingCode(FallbackCounty),
}
