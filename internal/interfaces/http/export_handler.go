package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/delivery-tax-api/internal/application/dto"
	"github.com/jhoicas/delivery-tax-api/internal/application/usecase"
	"github.com/jhoicas/delivery-tax-api/internal/infrastructure/pdf"
)

// ExportHandler sirve la colección completa como descarga CSV o PDF.
type ExportHandler struct {
	uc  *usecase.OrderUseCase
	gen *pdf.OrdersReportGenerator
}

// NewExportHandler construye el handler de export.
func NewExportHandler(uc *usecase.OrderUseCase, gen *pdf.OrdersReportGenerator) *ExportHandler {
	return &ExportHandler{uc: uc, gen: gen}
}

// ExportCSV godoc
// @Summary      Exportar la colección completa como CSV
// @Tags         orders
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string  "archivo CSV"
// @Router       /api/orders/export [get]
func (h *ExportHandler) ExportCSV(c *fiber.Ctx) error {
	out, err := h.uc.ExportCSV(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="orders-%s.csv"`, time.Now().Format("2006-01-02")))
	return c.Send(out)
}

// ExportPDF godoc
// @Summary      Exportar la colección completa como reporte PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {string}  string  "archivo PDF"
// @Router       /api/orders/export/pdf [get]
func (h *ExportHandler) ExportPDF(c *fiber.Ctx) error {
	orders, err := h.uc.GetAll(c.Context(), 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out, err := h.gen.GenerateOrdersReport(orders)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="orders-%s.pdf"`, time.Now().Format("2006-01-02")))
	return c.Send(out)
}
