package tax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/delivery-tax-api/internal/domain/tax"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests Resolver — contención por rectángulo con primer-match-gana
// ──────────────────────────────────────────────────────────────────────────────

// Coordenadas estrictamente dentro de un rectángulo listado → jurisdicción de ese condado.
func TestResolver_PuntoDentroDeCondado(t *testing.T) {
	r := tax.NewResolver()

	cases := []struct {
		name     string
		lat, lon float64
		county   string
		city     string
	}{
		{"Manhattan", 40.78, -73.96, "New York", "New York City"},
		{"Nassau", 40.75, -73.55, "Nassau", ""},
		{"Erie (Buffalo)", 42.90, -78.85, "Erie", ""},
		{"Suffolk", 40.90, -72.50, "Suffolk", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			j := r.Resolve(tc.lat, tc.lon)
			assert.Equal(t, tc.county, j.County, "el condado resuelto no coincide")
			assert.Equal(t, tc.city, j.City)
		})
	}
}

// Punto dentro del estado pero fuera de todo rectángulo listado → fallback "Other".
// (44.0, -74.5) cae en el hueco de los Adirondacks entre Hamilton, Essex,
// Franklin y St. Lawrence.
func TestResolver_SinMatch_DevuelveOther(t *testing.T) {
	r := tax.NewResolver()

	j := r.Resolve(44.0, -74.5)
	assert.Equal(t, tax.FallbackCounty, j.County, "debe resolver al condado Other")
	assert.True(t, j.CompositeRate().Equal(decimalFromString(t, "0.08")),
		"Other debe tener tasa estatal 0.04 + condado default 0.04")
	assert.Empty(t, j.SpecialDistricts)
}

// Los bordes son inclusivos en los cuatro lados.
func TestResolver_BordesInclusivos(t *testing.T) {
	r := tax.NewResolver()

	// Esquina exacta del rectángulo de New York County.
	j := r.Resolve(40.700, -74.020)
	assert.Equal(t, "New York", j.County, "la esquina mínima debe pertenecer al rectángulo")
}

// En bordes compartidos gana el primer rectángulo en orden de lista, no el más
// específico. lat 40.700 / lon -73.95 está en el borde entre New York y Kings:
// New York aparece primero.
func TestResolver_SolapamientoGanaPrimerMatch(t *testing.T) {
	r := tax.NewResolver()

	j := r.Resolve(40.700, -73.95)
	assert.Equal(t, "New York", j.County,
		"en solapamientos debe ganar el primer rectángulo de la lista")
}

// Resolve nunca falla, incluso con coordenadas absurdas.
func TestResolver_CoordenadasFueraDeRango_NoFalla(t *testing.T) {
	r := tax.NewResolver()

	j := r.Resolve(999, 999)
	require.NotEmpty(t, j.County)
	assert.Equal(t, tax.FallbackCounty, j.County)
}

// Cada condado listado tiene exactamente un registro de jurisdicción.
func TestResolver_FallbackExpuesto(t *testing.T) {
	r := tax.NewResolver()
	assert.Equal(t, tax.FallbackCounty, r.Fallback().County)
	assert.Equal(t, "NY-OTHER", r.Fallback().ReportingCode)
}
