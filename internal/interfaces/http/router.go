package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/delivery-tax-api/internal/application/auth"
	"github.com/jhoicas/delivery-tax-api/internal/application/usecase"
	"github.com/jhoicas/delivery-tax-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC      *usecase.OrderUseCase
	AuthUC       *auth.UseCase
	PDFGenerator *pdf.OrdersReportGenerator
	JWTSecret    string
	// Límites del import CSV.
	ImportMaxConcurrent int
	ImportMaxFileSizeMB int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	importHandler := NewImportHandler(deps.OrderUC, deps.ImportMaxConcurrent, deps.ImportMaxFileSizeMB)
	exportHandler := NewExportHandler(deps.OrderUC, deps.PDFGenerator)

	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/all", orderHandler.GetAll)
	orders.Get("/export", exportHandler.ExportCSV)
	orders.Get("/export/pdf", exportHandler.ExportPDF)
	orders.Post("/import", importHandler.Import)
	orders.Delete("/", orderHandler.DeleteAll)
	orders.Get("/:id", orderHandler.GetByID)
}
