package repo

import (
	"context"
	"errors"
	"time"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

// ProductRepository defines the product operations the dashboard consumes.
// Products are addressed by name.
type ProductRepository interface {
	// GetAll returns every product in store order.
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByName(ctx context.Context, name string) (models.Product, error)
	// Create inserts p unless a product with the same name exists, in which
	// case it returns ErrDuplicatedValueUnique and writes nothing.
	Create(ctx context.Context, p models.Product) (models.Product, error)
	// Update overwrites quantity and unit price of the named product.
	Update(ctx context.Context, name string, quantity int, unitPrice float64) (models.Product, error)
	Delete(ctx context.Context, name string) error
}

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrDuplicatedValueUnique is returned when a create would duplicate a product name.
var ErrDuplicatedValueUnique = errors.New("product name already exists")

const defaultTimeout = 3 * time.Second
