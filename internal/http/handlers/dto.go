package handlers

import "github.com/rogerio-castellano/inventory-dashboard/internal/dashboard"

type ProductResponse struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta"`
}

type DashboardResponse struct {
	dashboard.Summary
	TotalValueFormatted string `json:"total_value_formatted"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
