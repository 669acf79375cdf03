// Package report serialises the product collection to and from the CSV
// layout offered for download on the dashboard.
package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

const (
	Filename    = "relatorio_estoque.csv"
	ContentType = "text/csv"
)

// WriteCSV writes a header row followed by one row per product, in the order
// given. Callers pass the full unfiltered fetch.
func WriteCSV(w io.Writer, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	if err := gocsv.Marshal(&products, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ReadCSV parses a file produced by WriteCSV.
func ReadCSV(r io.Reader) ([]models.Product, error) {
	products := []models.Product{}
	if err := gocsv.Unmarshal(r, &products); err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return products, nil
}
