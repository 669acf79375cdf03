package handlers

import (
	"html"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

// MaxQuantity bounds a single record's quantity. It matches the Postgres
// INTEGER column and keeps dashboard sums far from int overflow.
const MaxQuantity = math.MaxInt32

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

var stripTags = bluemonday.StrictPolicy()

var quantityTooLarge = ProductValidationError{
	Field:       "Quantity",
	Description: "Quantity cannot exceed " + strconv.Itoa(MaxQuantity),
}

// cleanName drops any markup from a submitted name. StrictPolicy escapes the
// text it keeps, so the result is unescaped back to plain text.
func cleanName(raw string) string {
	return strings.TrimSpace(html.UnescapeString(stripTags.Sanitize(raw)))
}

// parseCreateForm reads the create-item form. Missing numeric fields take the
// form defaults (zero); the first category is the default category.
func parseCreateForm(form url.Values) (models.Product, []ProductValidationError) {
	var errs []ProductValidationError

	p := models.Product{Name: cleanName(form.Get("name"))}
	if p.Name == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}

	category := strings.TrimSpace(form.Get("category"))
	if category == "" {
		category = string(models.Categories()[0])
	}
	if c, err := models.ParseCategory(category); err != nil {
		errs = append(errs, ProductValidationError{Field: "Category", Description: "Category is not valid"})
	} else {
		p.Category = string(c)
	}

	var numErrs []ProductValidationError
	p.Quantity, p.UnitPrice, numErrs = parseStock(form)
	errs = append(errs, numErrs...)

	return p, errs
}

func parseStock(form url.Values) (int, float64, []ProductValidationError) {
	var errs []ProductValidationError

	quantity := 0
	if s := strings.TrimSpace(form.Get("quantity")); s != "" {
		v, err := strconv.Atoi(s)
		switch {
		case err != nil:
			errs = append(errs, ProductValidationError{Field: "Quantity", Description: "Quantity must be a whole number"})
		case v < 0:
			errs = append(errs, ProductValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
		case v > MaxQuantity:
			errs = append(errs, quantityTooLarge)
		default:
			quantity = v
		}
	}

	price := 0.0
	if s := strings.TrimSpace(form.Get("unit_price")); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		switch {
		case err != nil || math.IsNaN(v) || math.IsInf(v, 0):
			errs = append(errs, ProductValidationError{Field: "UnitPrice", Description: "Unit price must be a number"})
		case v < 0:
			errs = append(errs, ProductValidationError{Field: "UnitPrice", Description: "Unit price cannot be negative"})
		default:
			price = v
		}
	}

	return quantity, price, errs
}

func validateProduct(p models.Product) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}
	if _, err := models.ParseCategory(p.Category); err != nil {
		errs = append(errs, ProductValidationError{Field: "Category", Description: "Category is not valid"})
	}
	switch {
	case p.Quantity < 0:
		errs = append(errs, ProductValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	case p.Quantity > MaxQuantity:
		errs = append(errs, quantityTooLarge)
	}
	switch {
	case math.IsNaN(p.UnitPrice) || math.IsInf(p.UnitPrice, 0):
		errs = append(errs, ProductValidationError{Field: "UnitPrice", Description: "Unit price must be a number"})
	case p.UnitPrice < 0:
		errs = append(errs, ProductValidationError{Field: "UnitPrice", Description: "Unit price cannot be negative"})
	}
	return errs
}

func describe(errs []ProductValidationError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Description
	}
	return strings.Join(parts, "; ")
}
