package domain

import "errors"

// ValidationError error de validación con el detalle por campo. Siempre
// enumera TODOS los campos inválidos de la petición, nunca solo el primero.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validación fallida"
}

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrOrderNotFound  = errors.New("orden no encontrada")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrFileTooLarge   = errors.New("el archivo excede el tamaño máximo permitido")
	ErrInvalidFile    = errors.New("formato de archivo no soportado")
	ErrTooManyImports = errors.New("demasiadas importaciones concurrentes")
	ErrEmptyImport    = errors.New("el archivo no contiene filas válidas")
)
