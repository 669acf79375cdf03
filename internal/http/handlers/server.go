package handlers

import (
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/rogerio-castellano/inventory-dashboard/internal/session"
)

var (
	productRepo    repo.ProductRepository
	flashStore     session.FlashStore = session.NewMemoryFlashStore()
	currencySymbol                    = "R$"
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetFlashStore(s session.FlashStore) {
	flashStore = s
}

func SetCurrencySymbol(symbol string) {
	currencySymbol = symbol
}
