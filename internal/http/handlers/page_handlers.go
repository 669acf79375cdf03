package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/inventory-dashboard/internal/metrics"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/rogerio-castellano/inventory-dashboard/internal/session"
	"github.com/rogerio-castellano/inventory-dashboard/internal/view"
)

const (
	msgCreated       = "Registered successfully!"
	msgDuplicate     = "Item already exists."
	msgUpdated       = "Updated!"
	msgDeleted       = "Deleted."
	msgNoLongerThere = "Item no longer exists."
)

// PageHandler renders the single-page UI. The page query parameter selects
// the section and item selects the record shown by the edit form.
func PageHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll(r.Context())
	if err != nil {
		serverError(w, r, "could not load products", err)
		return
	}

	var flashes []session.Flash
	if sid := session.ID(r.Context()); sid != "" {
		flashes, err = flashStore.Pop(r.Context(), sid)
		if err != nil {
			zap.L().Warn("could not read flash messages", zap.String("session", sid), zap.Error(err))
		}
	}

	v := view.Render(view.Input{
		Page:           view.ParsePage(r.URL.Query().Get("page")),
		Products:       products,
		Selected:       r.URL.Query().Get("item"),
		Flashes:        flashes,
		CurrencySymbol: currencySymbol,
	})
	if v.Dashboard != nil {
		metrics.ObserveInventory(v.Dashboard.Summary)
	}

	var buf bytes.Buffer
	if err := view.Execute(&buf, v); err != nil {
		serverError(w, r, "could not render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// CreateItemHandler handles the "Save" action of the create form.
func CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	const back = "/?page=create"

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	product, validationErrors := parseCreateForm(r.PostForm)
	if len(validationErrors) > 0 {
		flashAndRedirect(w, r, back, session.LevelWarning, describe(validationErrors))
		return
	}

	if _, err := productRepo.Create(r.Context(), product); err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			flashAndRedirect(w, r, back, session.LevelWarning, msgDuplicate)
			return
		}
		serverError(w, r, "could not create product", err)
		return
	}

	flashAndRedirect(w, r, back, session.LevelSuccess, msgCreated)
}

// UpdateItemHandler overwrites quantity and unit price of the selected item.
func UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := r.PostForm.Get("name")
	back := editURL(name)
	if name == "" {
		flashAndRedirect(w, r, back, session.LevelWarning, "Name is required")
		return
	}

	quantity, unitPrice, validationErrors := parseStock(r.PostForm)
	if len(validationErrors) > 0 {
		flashAndRedirect(w, r, back, session.LevelWarning, describe(validationErrors))
		return
	}

	if _, err := productRepo.Update(r.Context(), name, quantity, unitPrice); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			flashAndRedirect(w, r, editURL(""), session.LevelWarning, msgNoLongerThere)
			return
		}
		serverError(w, r, "could not update product", err)
		return
	}

	flashAndRedirect(w, r, back, session.LevelSuccess, msgUpdated)
}

// DeleteItemHandler removes the selected item.
func DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := r.PostForm.Get("name")
	if err := productRepo.Delete(r.Context(), name); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			flashAndRedirect(w, r, editURL(""), session.LevelWarning, msgNoLongerThere)
			return
		}
		serverError(w, r, "could not delete product", err)
		return
	}

	flashAndRedirect(w, r, editURL(""), session.LevelWarning, msgDeleted)
}

func editURL(item string) string {
	q := url.Values{"page": {string(view.PageEdit)}}
	if item != "" {
		q.Set("item", item)
	}
	return "/?" + q.Encode()
}
