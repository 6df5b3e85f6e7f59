// Package importer implementa el pipeline de importación CSV en dos fases:
// parseo con mapeo por encabezado y validación fila a fila que nunca
// descarta filas ni se detiene en el primer error.
package importer

import "strings"

// Columnas esperadas en el encabezado. El orden de columnas es libre: el
// mapeo es por nombre, no por posición.
const (
	ColumnID        = "id"
	ColumnLongitude = "longitude"
	ColumnLatitude  = "latitude"
	ColumnTimestamp = "timestamp"
	ColumnSubtotal  = "subtotal"
)

// RawRow fila CSV sin tipar, con los valores crudos por columna conocida.
// Columnas ausentes quedan como cadena vacía.
type RawRow struct {
	ID        string
	Longitude string
	Latitude  string
	Timestamp string
	Subtotal  string
}

// Parse divide el texto crudo en filas mapeadas por encabezado.
// La primera línea no vacía es el encabezado; las líneas en blanco se
// descartan; cada campo se recorta. Una fila con menos columnas que el
// encabezado produce cadenas vacías para los campos faltantes en lugar de
// fallar. Columnas desconocidas se ignoran.
func Parse(text string) []RawRow {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	// Localizar el encabezado (primera línea no vacía).
	headerIdx := -1
	var columns []string
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		headerIdx = i
		for _, c := range strings.Split(line, ",") {
			columns = append(columns, strings.ToLower(strings.TrimSpace(c)))
		}
		break
	}
	if headerIdx < 0 {
		return nil
	}

	var rows []RawRow
	for _, line := range lines[headerIdx+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.Split(line, ",")

		var row RawRow
		for idx, col := range columns {
			value := ""
			if idx < len(values) {
				value = strings.TrimSpace(values[idx])
			}
			switch col {
			case ColumnID:
				row.ID = value
			case ColumnLongitude:
				row.Longitude = value
			case ColumnLatitude:
				row.Latitude = value
			case ColumnTimestamp:
				row.Timestamp = value
			case ColumnSubtotal:
				row.Subtotal = value
			}
		}
		rows = append(rows, row)
	}
	return rows
}
