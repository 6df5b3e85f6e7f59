// Herramienta de export: descarga la colección completa de órdenes de una
// instancia remota de la API (paginando con concurrencia acotada) y la
// escribe como CSV o reporte PDF.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/delivery-tax-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/delivery-tax-api/internal/infrastructure/pdf"
	"github.com/jhoicas/delivery-tax-api/internal/infrastructure/remote"
	"github.com/jhoicas/delivery-tax-api/pkg/config"
	"github.com/jhoicas/delivery-tax-api/pkg/logger"
)

func main() {
	var (
		format = flag.String("format", "csv", "formato de salida: csv | pdf")
		output = flag.String("output", "", "archivo de salida (default: orders-<fecha>.<formato>)")
		limit  = flag.Int("limit", 0, "recortar a las primeras N órdenes (0 = todas)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if *format != "csv" && *format != "pdf" {
		log.Fatal().Str("format", *format).Msg("formato no soportado")
	}
	path := *output
	if path == "" {
		path = fmt.Sprintf("orders-%s.%s", time.Now().Format("2006-01-02"), *format)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client := remote.NewOrdersClient(cfg.Remote.BaseURL, cfg.Remote.Token)
	log.Info().Str("base_url", cfg.Remote.BaseURL).Msg("descargando órdenes")

	orders, err := client.GetAllOrders(ctx, *limit)
	if err != nil {
		log.Fatal().Err(err).Msg("descarga de órdenes")
	}
	log.Info().Int("orders", len(orders)).Msg("descarga completa")

	var out []byte
	switch *format {
	case "csv":
		out, err = usecase.OrdersToCSV(orders)
	case "pdf":
		out, err = infrapdf.NewOrdersReportGenerator().GenerateOrdersReport(orders)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("serializar export")
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("escribir archivo")
	}
	log.Info().Str("path", path).Msg("export escrito")
}
