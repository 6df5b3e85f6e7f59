package importer

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Límites de validación por campo.
var (
	minSubtotal = decimal.NewFromFloat(0.01)
)

// Formatos de fecha aceptados en la columna timestamp, en orden de intento.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp interpreta el timestamp de una fila probando los formatos
// aceptados en orden.
func ParseTimestamp(s string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var ts time.Time
		if ts, err = time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}

// ParsedRow fila tipada candidata a orden. En filas inválidas los valores son
// coerciones a mejor esfuerzo (coerciones fallidas quedan en 0) para que el
// caller pueda renderizarlas en la tabla de revisión.
type ParsedRow struct {
	ID        int
	Longitude float64
	Latitude  float64
	Timestamp string
	Subtotal  decimal.Decimal
}

// ValidatedRow resultado de validar una fila: la fila tipada, el veredicto y
// la lista ORDENADA de todos los errores de campo (nunca solo el primero).
type ValidatedRow struct {
	Row    ParsedRow
	Valid  bool
	Errors []string
}

// Summary conteos del lote validado.
type Summary struct {
	Valid   int
	Invalid int
}

// Validate tipa y valida una fila. Cada campo que viola su restricción agrega
// su mensaje; la fila nunca se descarta.
func Validate(raw RawRow) ValidatedRow {
	var errs []string
	var row ParsedRow

	id, err := strconv.Atoi(raw.ID)
	if err != nil {
		errs = append(errs, "id debe ser un entero positivo")
	} else {
		row.ID = id
		if id <= 0 {
			errs = append(errs, "id debe ser un entero positivo")
		}
	}

	lon, err := strconv.ParseFloat(raw.Longitude, 64)
	if err != nil {
		errs = append(errs, "longitude debe ser un número")
	} else {
		row.Longitude = lon
		if lon < -180 || lon > 180 {
			errs = append(errs, "longitude debe estar entre -180 y 180")
		}
	}

	lat, err := strconv.ParseFloat(raw.Latitude, 64)
	if err != nil {
		errs = append(errs, "latitude debe ser un número")
	} else {
		row.Latitude = lat
		if lat < -90 || lat > 90 {
			errs = append(errs, "latitude debe estar entre -90 y 90")
		}
	}

	row.Timestamp = raw.Timestamp
	if raw.Timestamp == "" {
		errs = append(errs, "timestamp es requerido")
	} else if _, err := ParseTimestamp(raw.Timestamp); err != nil {
		errs = append(errs, "timestamp debe ser una fecha válida")
	}

	sub, err := decimal.NewFromString(raw.Subtotal)
	if err != nil {
		row.Subtotal = decimal.Zero
		errs = append(errs, "subtotal debe ser un número")
	} else {
		row.Subtotal = sub
		if sub.LessThan(minSubtotal) {
			errs = append(errs, "subtotal debe ser al menos 0.01")
		}
	}

	return ValidatedRow{Row: row, Valid: len(errs) == 0, Errors: errs}
}

// ValidateAll valida el lote completo: nunca corta en la primera falla y
// devuelve exactamente una ValidatedRow por fila de entrada, junto con los
// conteos de válidas e inválidas.
func ValidateAll(rows []RawRow) ([]ValidatedRow, Summary) {
	validated := make([]ValidatedRow, 0, len(rows))
	var s Summary
	for _, raw := range rows {
		v := Validate(raw)
		if v.Valid {
			s.Valid++
		} else {
			s.Invalid++
		}
		validated = append(validated, v)
	}
	return validated, s
}
