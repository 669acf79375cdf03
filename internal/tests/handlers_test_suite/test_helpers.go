package handlers_test_suite

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"go.uber.org/zap"

	api "github.com/rogerio-castellano/inventory-dashboard/internal/http"
	handler "github.com/rogerio-castellano/inventory-dashboard/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/rogerio-castellano/inventory-dashboard/internal/session"
)

const testSecret = "handlers-test-secret"

var productRepo *repo.InMemoryProductRepository

func init() {
	setupTestRepos()
}

func setupTestRepos() {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)
	handler.SetFlashStore(session.NewMemoryFlashStore())
	handler.SetCurrencySymbol("R$")
}

func newRouter() http.Handler {
	return api.NewRouter(api.RouterConfig{
		SessionSecret: []byte(testSecret),
		Logger:        zap.NewNop(),
	})
}

func clearAllProducts() {
	productRepo.Clear()
}

func seed(products ...models.Product) {
	for _, p := range products {
		if _, err := productRepo.Create(context.Background(), p); err != nil {
			panic(err)
		}
	}
}

func countProducts() int {
	all, _ := productRepo.GetAll(context.Background())
	return len(all)
}

// browser replays the session cookie the way a real browser would, so flash
// messages queued by a POST show up on the following GET.
type browser struct {
	h       http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser() *browser {
	return &browser{h: newRouter(), cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.h.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return w
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (b *browser) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// submit posts the form and follows the redirect back to the page.
func (b *browser) submit(target string, form url.Values) (post, page *httptest.ResponseRecorder) {
	post = b.postForm(target, form)
	loc := post.Header().Get("Location")
	if loc == "" {
		return post, nil
	}
	return post, b.get(loc)
}

func itemForm(name, category, quantity, unitPrice string) url.Values {
	return url.Values{
		"name":       {name},
		"category":   {category},
		"quantity":   {quantity},
		"unit_price": {unitPrice},
	}
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
