package repository

import (
	"context"

	"github.com/jhoicas/delivery-tax-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia para órdenes (DIP).
//
// La asignación de IDs es responsabilidad del store: cada inserción consume el
// siguiente entero secuencial empezando en 1, y DeleteAll reinicia la
// secuencia. Las inserciones anteponen (la más reciente primero). GetAll
// devuelve una copia defensiva con instantánea consistente.
type OrderRepository interface {
	Create(ctx context.Context, order entity.Order) (entity.Order, error)
	CreateBatch(ctx context.Context, orders []entity.Order) ([]entity.Order, error)
	GetByID(ctx context.Context, id int) (*entity.Order, error)
	GetAll(ctx context.Context) ([]entity.Order, error)
	DeleteAll(ctx context.Context) error
}
