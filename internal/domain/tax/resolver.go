package tax

import "github.com/jhoicas/delivery-tax-api/internal/domain/entity"

// Resolver resuelve una coordenada (lat, lon) a una Jurisdiction mediante
// pruebas de contención sobre una lista ordenada de rectángulos por condado.
//
// La estructura de búsqueda es deliberadamente una lista ordenada y no un
// índice espacial: los rectángulos vecinos se solapan en los bordes y la
// regla de desempate es primer-match-gana en orden de lista. Cualquier
// optimización tendría que preservar exactamente esa semántica.
type Resolver struct {
	bounds   []entity.CountyBounds
	byCounty map[string]entity.Jurisdiction
	fallback entity.Jurisdiction
}

// NewResolver construye el resolver con la tabla de referencia de NY.
func NewResolver() *Resolver {
	byCounty := make(map[string]entity.Jurisdiction, len(jurisdictions))
	for _, j := range jurisdictions {
		byCounty[j.County] = j
	}
	return &Resolver{
		bounds:   countyBounds,
		byCounty: byCounty,
		fallback: fallbackJurisdiction,
	}
}

// Resolve devuelve la jurisdicción del primer rectángulo que contiene el punto
// (bordes inclusivos). Nunca falla: si ningún rectángulo contiene el punto se
// devuelve la jurisdicción "Other". No valida rangos de coordenadas; eso es
// responsabilidad del caller.
func (r *Resolver) Resolve(lat, lon float64) entity.Jurisdiction {
	for _, b := range r.bounds {
		if !b.Contains(lat, lon) {
			continue
		}
		if j, ok := r.byCounty[b.County]; ok {
			return j
		}
	}
	return r.fallback
}

// Fallback expone la jurisdicción "Other" (útil para tests y documentación de API).
func (r *Resolver) Fallback() entity.Jurisdiction {
	return r.fallback
}
