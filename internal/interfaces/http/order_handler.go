package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/delivery-tax-api/internal/application/dto"
	"github.com/jhoicas/delivery-tax-api/internal/application/usecase"
	"github.com/jhoicas/delivery-tax-api/internal/domain"
	"github.com/jhoicas/delivery-tax-api/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP para órdenes.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "latitude, longitude, subtotal, timestamp opcional"
// @Success      201   {object}  entity.Order
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Code: "VALIDATION", Fields: verr.Fields})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes con filtros, orden y paginación
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        page              query  int     false  "Página"        default(1)
// @Param        page_size         query  int     false  "Tamaño"        default(20)  maximum(200)
// @Param        search            query  string  false  "Texto libre sobre id, condado y ciudad"
// @Param        status            query  string  false  "completed | out_of_scope"
// @Param        reporting_code    query  string  false  "Código de reporte exacto"
// @Param        total_amount_min  query  number  false  "Subtotal mínimo (inclusivo)"
// @Param        total_amount_max  query  number  false  "Subtotal máximo (inclusivo)"
// @Param        from_date         query  string  false  "Fecha desde (inclusiva)"
// @Param        to_date           query  string  false  "Fecha hasta (inclusiva)"
// @Param        sort_by           query  string  false  "Campo de orden"  default(timestamp)
// @Param        sort_order        query  string  false  "asc | desc"      default(desc)
// @Success      200  {object}  dto.OrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	filters, err := parseFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", usecase.DefaultPageSize)

	out, err := h.uc.List(c.Context(), page, pageSize, filters)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetAll godoc
// @Summary      Descargar la colección completa (la más reciente primero)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Recortar a las primeras N órdenes"
// @Success      200  {array}  entity.Order
// @Router       /api/orders/all [get]
func (h *OrderHandler) GetAll(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	orders, err := h.uc.GetAll(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	return c.JSON(orders)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  entity.Order
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeleteAll godoc
// @Summary      Borrar la colección completa y reiniciar la secuencia de IDs
// @Tags         orders
// @Security     Bearer
// @Success      204
// @Router       /api/orders [delete]
func (h *OrderHandler) DeleteAll(c *fiber.Ctx) error {
	if err := h.uc.ClearAll(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Formatos de fecha aceptados en from_date/to_date.
var filterDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseFilters(c *fiber.Ctx) (dto.OrderFilters, error) {
	filters := dto.OrderFilters{
		Search:        c.Query("search"),
		Status:        c.Query("status"),
		ReportingCode: c.Query("reporting_code"),
		SortBy:        c.Query("sort_by", dto.SortByTimestamp),
		SortOrder:     c.Query("sort_order", dto.SortOrderDesc),
	}

	if s := c.Query("total_amount_min"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return filters, errors.New("total_amount_min debe ser un número")
		}
		filters.AmountMin = &d
	}
	if s := c.Query("total_amount_max"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return filters, errors.New("total_amount_max debe ser un número")
		}
		filters.AmountMax = &d
	}
	if s := c.Query("from_date"); s != "" {
		ts, err := parseFilterDate(s)
		if err != nil {
			return filters, errors.New("from_date debe ser una fecha válida")
		}
		filters.FromDate = &ts
	}
	if s := c.Query("to_date"); s != "" {
		ts, err := parseFilterDate(s)
		if err != nil {
			return filters, errors.New("to_date debe ser una fecha válida")
		}
		// Una fecha sin hora cubre el día completo.
		if len(s) == len("2006-01-02") {
			ts = ts.Add(24*time.Hour - time.Nanosecond)
		}
		filters.ToDate = &ts
	}
	return filters, nil
}

func parseFilterDate(s string) (time.Time, error) {
	var err error
	for _, layout := range filterDateLayouts {
		var ts time.Time
		if ts, err = time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}
