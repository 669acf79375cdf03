package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/inventory-dashboard/internal/dashboard"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard aggregates
// @Description Totals, top products by quantity and quantity per category
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Failure 500 {string} string "Internal error"
// @Router /api/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll(r.Context())
	if err != nil {
		serverError(w, r, "failed to fetch metrics", err)
		return
	}

	s := dashboard.Summarize(products)
	resp := DashboardResponse{
		Summary:             s,
		TotalValueFormatted: dashboard.FormatCurrency(currencySymbol, s.TotalValue),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		zap.L().Error("failed to write JSON response", zap.Error(err))
	}
}
