// Package remote implementa el cliente HTTP de la API de órdenes, usado por
// la herramienta de export para descargar la colección completa.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/delivery-tax-api/internal/application/dto"
	"github.com/jhoicas/delivery-tax-api/internal/domain/entity"
)

const (
	// maxPageSize tope de page_size del servidor; el fetch-all pide páginas de este tamaño.
	maxPageSize = 200
	// maxConcurrentFetches ancho del pool al descargar páginas restantes.
	maxConcurrentFetches = 10
)

// OrdersClient cliente de la API de órdenes.
type OrdersClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewOrdersClient construye el cliente. token puede ser vacío si la instancia
// destino no exige autenticación.
func NewOrdersClient(baseURL, token string) *OrdersClient {
	return &OrdersClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// GetPage descarga una página del listado.
func (c *OrdersClient) GetPage(ctx context.Context, page, pageSize int) (*dto.OrderListResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/orders?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("página %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("página %d: status %d: %s", page, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var list dto.OrderListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("página %d: decodificar respuesta: %w", page, err)
	}
	return &list, nil
}

// GetAllOrders descarga la colección completa paginando con page_size máximo.
// La primera página revela cuántas quedan; las restantes se descargan en
// paralelo con ancho acotado y se ensamblan en orden de página. Cualquier
// página fallida aborta la descarga completa: nunca se devuelve un resultado
// parcial. Un limit > 0 recorta a las primeras limit órdenes.
func (c *OrdersClient) GetAllOrders(ctx context.Context, limit int) ([]entity.Order, error) {
	pageSize := maxPageSize
	if limit > 0 && limit < pageSize {
		// Todo cabe en una sola página del tamaño exacto pedido.
		pageSize = limit
	}

	first, err := c.GetPage(ctx, 1, pageSize)
	if err != nil {
		return nil, err
	}
	totalPages := first.Meta.TotalPages
	if totalPages <= 1 || (limit > 0 && limit <= pageSize) {
		return crop(first.Data, limit), nil
	}

	if limit > 0 {
		needed := (limit + pageSize - 1) / pageSize
		if needed < totalPages {
			totalPages = needed
		}
	}

	pages := make([][]entity.Order, totalPages+1)
	pages[1] = first.Data

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for page := 2; page <= totalPages; page++ {
		page := page
		g.Go(func() error {
			list, err := c.GetPage(gctx, page, pageSize)
			if err != nil {
				return err
			}
			pages[page] = list.Data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var orders []entity.Order
	for page := 1; page <= totalPages; page++ {
		orders = append(orders, pages[page]...)
	}
	return crop(orders, limit), nil
}

func crop(orders []entity.Order, limit int) []entity.Order {
	if limit > 0 && limit < len(orders) {
		return orders[:limit]
	}
	return orders
}
