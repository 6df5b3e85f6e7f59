package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/delivery-tax-api/internal/application/importer"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests Parse — mapeo por encabezado
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_EncabezadoEnOrdenCanonico(t *testing.T) {
	text := "id,longitude,latitude,timestamp,subtotal\n" +
		"1,-73.96,40.78,2024-01-15 10:30:00,100.50\n" +
		"2,-73.55,40.75,2024-01-15 11:00:00,200\n"

	rows := importer.Parse(text)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].ID)
	assert.Equal(t, "-73.96", rows[0].Longitude)
	assert.Equal(t, "40.78", rows[0].Latitude)
	assert.Equal(t, "2024-01-15 10:30:00", rows[0].Timestamp)
	assert.Equal(t, "100.50", rows[0].Subtotal)
}

// El mapeo es por nombre de columna, no por posición.
func TestParse_EncabezadoDesordenado(t *testing.T) {
	text := "subtotal,id,timestamp,latitude,longitude\n" +
		"99.99,7,2024-02-01 08:00:00,40.70,-74.00\n"

	rows := importer.Parse(text)
	require.Len(t, rows, 1)
	assert.Equal(t, "7", rows[0].ID)
	assert.Equal(t, "-74.00", rows[0].Longitude)
	assert.Equal(t, "40.70", rows[0].Latitude)
	assert.Equal(t, "99.99", rows[0].Subtotal)
}

// Líneas en blanco (incluso antes del encabezado) se descartan; los campos se recortan.
func TestParse_LineasEnBlancoYEspacios(t *testing.T) {
	text := "\n\nid, longitude, latitude, timestamp, subtotal\n" +
		" 1 , -73.96 , 40.78 , 2024-01-15 10:30:00 , 100 \n" +
		"\n" +
		"2,-73.55,40.75,2024-01-15 11:00:00,200\n\n"

	rows := importer.Parse(text)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].ID)
	assert.Equal(t, "-73.96", rows[0].Longitude)
}

// Una fila con menos columnas que el encabezado produce cadenas vacías, no error.
func TestParse_FilaCorta_RellenaConVacios(t *testing.T) {
	text := "id,longitude,latitude,timestamp,subtotal\n" +
		"1,-73.96\n"

	rows := importer.Parse(text)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].ID)
	assert.Equal(t, "-73.96", rows[0].Longitude)
	assert.Empty(t, rows[0].Latitude)
	assert.Empty(t, rows[0].Timestamp)
	assert.Empty(t, rows[0].Subtotal)
}

// Columnas desconocidas se ignoran sin fallar.
func TestParse_ColumnasDesconocidas(t *testing.T) {
	text := "id,comment,subtotal\n" +
		"3,nota interna,42.00\n"

	rows := importer.Parse(text)
	require.Len(t, rows, 1)
	assert.Equal(t, "3", rows[0].ID)
	assert.Equal(t, "42.00", rows[0].Subtotal)
	assert.Empty(t, rows[0].Latitude)
}

func TestParse_TextoVacio(t *testing.T) {
	assert.Nil(t, importer.Parse(""))
	assert.Nil(t, importer.Parse("\n\n  \n"))
}

// Encabezado con CRLF (archivos exportados desde Windows/Excel).
func TestParse_CRLF(t *testing.T) {
	text := "id,longitude,latitude,timestamp,subtotal\r\n" +
		"1,-73.96,40.78,2024-01-15 10:30:00,100\r\n"

	rows := importer.Parse(text)
	require.Len(t, rows, 1)
	assert.Equal(t, "100", rows[0].Subtotal)
}
