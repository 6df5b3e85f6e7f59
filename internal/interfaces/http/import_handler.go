package http

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/delivery-tax-api/internal/application/dto"
	"github.com/jhoicas/delivery-tax-api/internal/application/usecase"
	"github.com/jhoicas/delivery-tax-api/internal/domain"
)

// Content types aceptados para el archivo CSV. Los navegadores y Excel
// reportan tipos distintos para el mismo .csv.
var allowedImportTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"application/vnd.ms-excel": true,
	"text/plain":               true,
}

// ImportHandler maneja el import CSV de órdenes. Un semáforo de slots acota
// cuántas importaciones corren a la vez; al llenarse se responde 429 en lugar
// de encolar.
type ImportHandler struct {
	uc          *usecase.OrderUseCase
	slots       chan struct{}
	maxFileSize int64
}

// NewImportHandler construye el handler con maxConcurrent slots y tamaño
// máximo de archivo en MB.
func NewImportHandler(uc *usecase.OrderUseCase, maxConcurrent, maxFileSizeMB int) *ImportHandler {
	return &ImportHandler{
		uc:          uc,
		slots:       make(chan struct{}, maxConcurrent),
		maxFileSize: int64(maxFileSizeMB) * 1024 * 1024,
	}
}

// Import godoc
// @Summary      Importar órdenes desde CSV (validar, luego confirmar)
// @Tags         orders
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo CSV con columnas id, longitude, latitude, timestamp, subtotal"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      413   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/orders/import [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	select {
	case h.slots <- struct{}{}:
		defer func() { <-h.slots }()
	default:
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "TOO_MANY_IMPORTS", Message: domain.ErrTooManyImports.Error()})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo multipart 'file' requerido"})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: domain.ErrFileTooLarge.Error()})
	}
	if !validImportFile(fileHeader.Filename, fileHeader.Header.Get("Content-Type")) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: domain.ErrInvalidFile.Error()})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, h.maxFileSize+1))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	if int64(len(content)) > h.maxFileSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: domain.ErrFileTooLarge.Error()})
	}

	out, err := h.uc.ImportCSV(c.Context(), string(content))
	if err != nil {
		if errors.Is(err, domain.ErrEmptyImport) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_IMPORT", Message: domain.ErrEmptyImport.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// validImportFile acepta el archivo si la extensión es .csv o el content type
// es uno de los reportados por navegadores para CSV.
func validImportFile(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return true
	}
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return allowedImportTypes[strings.TrimSpace(strings.ToLower(contentType))]
}
