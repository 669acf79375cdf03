package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/inventory-dashboard/internal/report"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
)

const maxImportSize = 10 << 20

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Accepts the same layout the export produces. Existing names are skipped unless mode=update.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /api/products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := report.ReadCSV(file)
	if err != nil {
		http.Error(w, "invalid CSV file", http.StatusBadRequest)
		return
	}

	imported := 0
	errorsList := []ProductValidationError{}

	for i, rec := range records {
		rowNum := i + 2 // header is row 1
		rec.Name = cleanName(rec.Name)

		if errs := validateProduct(rec); len(errs) > 0 {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %s", rowNum, describe(errs))})
			continue
		}

		_, err := productRepo.Create(r.Context(), rec)
		if err == nil {
			imported++
			continue
		}
		if !errors.Is(err, repo.ErrDuplicatedValueUnique) {
			serverError(w, r, "could not import products", err)
			return
		}
		if mode == "skip" {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: product '%s' already exists", rowNum, rec.Name)})
			continue
		}
		if _, err := productRepo.Update(r.Context(), rec.Name, rec.Quantity, rec.UnitPrice); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: failed to update '%s'", rowNum, rec.Name)})
			continue
		}
		imported++
	}

	err = writeJSON(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})
	if err != nil {
		zap.L().Error("failed to write JSON response", zap.Error(err))
	}
}
