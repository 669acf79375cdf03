package repo

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
	}
}

// GetAll retrieves all products in insertion order.
func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *InMemoryProductRepository) GetByName(_ context.Context, name string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(name); i >= 0 {
		return r.products[i], nil
	}
	return models.Product{}, ErrProductNotFound
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(product.Name) >= 0 {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	r.products = append(r.products, product)
	return product, nil
}

// Update modifies quantity and unit price of an existing product.
func (r *InMemoryProductRepository) Update(_ context.Context, name string, quantity int, unitPrice float64) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(name)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}
	r.products[i].Quantity = quantity
	r.products[i].UnitPrice = unitPrice
	return r.products[i], nil
}

// Delete removes a product from the repository by its name.
func (r *InMemoryProductRepository) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(name)
	if i < 0 {
		return ErrProductNotFound
	}
	r.products = append(r.products[:i], r.products[i+1:]...)
	return nil
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}

func (r *InMemoryProductRepository) indexOf(name string) int {
	for i, p := range r.products {
		if p.Name == name {
			return i
		}
	}
	return -1
}
