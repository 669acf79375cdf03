package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/inventory-dashboard/internal/report"
)

// GetProductsHandler godoc
// @Summary List all products
// @Description Returns every inventory record in store order
// @Tags products
// @Produce json
// @Success 200 {object} ProductsResult
// @Failure 500 {string} string "Internal error"
// @Router /api/products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll(r.Context())
	if err != nil {
		serverError(w, r, "could not fetch products", err)
		return
	}

	resp := ProductsResult{
		Data: make([]ProductResponse, 0, len(products)),
		Meta: Meta{TotalCount: len(products)},
	}
	for _, p := range products {
		resp.Data = append(resp.Data, ProductResponse{
			Name:      p.Name,
			Category:  p.Category,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
		})
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		zap.L().Error("failed to write JSON response", zap.Error(err))
	}
}

// ExportProductsHandler godoc
// @Summary Download the inventory report
// @Description CSV with a header row and one row per record
// @Tags products
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Failure 500 {string} string "Internal error"
// @Router /export.csv [get]
func ExportProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll(r.Context())
	if err != nil {
		serverError(w, r, "could not fetch products", err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, products); err != nil {
		serverError(w, r, "could not build report", err)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	_, _ = buf.WriteTo(w)
}
