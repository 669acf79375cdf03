package handlers_integrated_test_suite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/inventory-dashboard/internal/db"
	api "github.com/rogerio-castellano/inventory-dashboard/internal/http"
	handler "github.com/rogerio-castellano/inventory-dashboard/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/rogerio-castellano/inventory-dashboard/internal/session"
)

const testTimeout = 3 * time.Second

var (
	mongoDB      *mongo.Database
	mongoRepo    *repo.MongoProductRepository
	postgresDB   *sql.DB
	postgresRepo *repo.PostgresProductRepository
)

// TestMain runs the suite against the stores named by MONGO_URI_TEST and,
// optionally, DATABASE_URL_TEST. Without MONGO_URI_TEST the suite is skipped.
func TestMain(m *testing.M) {
	mongoURI := os.Getenv("MONGO_URI_TEST")
	if mongoURI == "" {
		fmt.Println("MONGO_URI_TEST not set, skipping integrated tests")
		os.Exit(0)
	}

	ctx := context.Background()
	client, err := db.ConnectMongo(ctx, mongoURI)
	if err != nil {
		log.Fatal("❌ Could not connect to mongo:", err)
	}

	mongoDB = client.Database("inventory_test_" + strings.ReplaceAll(uuid.NewString(), "-", ""))
	mongoRepo = repo.NewMongoProductRepository(mongoDB.Collection("inventory_items"), testTimeout)
	if err := mongoRepo.EnsureSchema(ctx); err != nil {
		log.Fatal("❌ Could not create index:", err)
	}

	if pgURL := os.Getenv("DATABASE_URL_TEST"); pgURL != "" {
		postgresDB, err = db.ConnectPostgres(ctx, pgURL)
		if err != nil {
			log.Fatal("❌ Could not connect to database:", err)
		}
		postgresRepo = repo.NewPostgresProductRepository(postgresDB, testTimeout)
		if err := postgresRepo.EnsureSchema(ctx); err != nil {
			log.Fatal("❌ Could not create schema:", err)
		}
	}

	handler.SetProductRepo(mongoRepo)
	handler.SetFlashStore(session.NewMemoryFlashStore())
	handler.SetCurrencySymbol("R$")

	code := m.Run()

	_ = mongoDB.Drop(ctx)
	_ = client.Disconnect(ctx)
	if postgresDB != nil {
		_, _ = postgresDB.ExecContext(ctx, "DROP TABLE IF EXISTS products")
		_ = postgresDB.Close()
	}
	os.Exit(code)
}

func clearAllProducts() {
	ctx := context.Background()
	if _, err := mongoDB.Collection("inventory_items").DeleteMany(ctx, bson.M{}); err != nil {
		log.Printf("could not clear mongo collection: %v", err)
	}
	if postgresDB != nil {
		if _, err := postgresDB.ExecContext(ctx, "TRUNCATE products RESTART IDENTITY"); err != nil {
			log.Printf("could not truncate products: %v", err)
		}
	}
}

// stores lists every repository reachable in this run.
func stores() map[string]repo.ProductRepository {
	s := map[string]repo.ProductRepository{"mongo": mongoRepo}
	if postgresRepo != nil {
		s["postgres"] = postgresRepo
	}
	return s
}

func newRouter() http.Handler {
	return api.NewRouter(api.RouterConfig{
		SessionSecret: []byte("integrated-test-secret"),
		Logger:        zap.NewNop(),
	})
}

func postForm(r http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
