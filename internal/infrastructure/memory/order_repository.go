// Package memory implementa el repositorio de órdenes en memoria, el store
// por defecto del servicio cuando no hay DATABASE_URL configurada.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/delivery-tax-api/internal/domain"
	"github.com/jhoicas/delivery-tax-api/internal/domain/entity"
	"github.com/jhoicas/delivery-tax-api/internal/domain/repository"
)

// OrderRepository store en memoria protegido por RWMutex. Los IDs se asignan
// secuencialmente desde 1 y DeleteAll reinicia la secuencia. Las órdenes se
// anteponen: la más reciente queda primera.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []entity.Order
	nextID int
}

// NewOrderRepository crea un store vacío con la secuencia en 1.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{nextID: 1}
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

// Create asigna el siguiente ID y antepone la orden.
func (r *OrderRepository) Create(_ context.Context, order entity.Order) (entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	r.orders = append([]entity.Order{order}, r.orders...)
	return order, nil
}

// CreateBatch inserta el lote completo bajo un solo lock: los IDs del lote son
// consecutivos y ninguna otra escritura puede intercalarse. Dentro del lote se
// conserva el orden de entrada en los IDs, pero cada orden se antepone igual
// que en Create.
func (r *OrderRepository) CreateBatch(_ context.Context, orders []entity.Order) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := make([]entity.Order, 0, len(orders))
	for _, order := range orders {
		order.ID = r.nextID
		r.nextID++
		r.orders = append([]entity.Order{order}, r.orders...)
		created = append(created, order)
	}
	return created, nil
}

// GetByID busca por ID. Devuelve domain.ErrOrderNotFound si no existe.
func (r *OrderRepository) GetByID(_ context.Context, id int) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.ID == id {
			o := order
			return &o, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

// GetAll devuelve una copia defensiva de la colección completa.
func (r *OrderRepository) GetAll(_ context.Context) ([]entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

// DeleteAll vacía el store y reinicia la secuencia de IDs en 1.
func (r *OrderRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = nil
	r.nextID = 1
	return nil
}
