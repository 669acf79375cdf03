package handlers_integrated_test_suite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
)

func TestStore_CreateAndGetAllRoundTrip(t *testing.T) {
	for name, s := range stores() {
		t.Run(name, func(t *testing.T) {
			t.Cleanup(clearAllProducts)
			ctx := context.Background()

			in := []models.Product{
				{Name: "Laptop", Category: "Electronics", Quantity: 3, UnitPrice: 3500},
				{Name: "Chair", Category: "Furniture", Quantity: 10, UnitPrice: 120.5},
			}
			for _, p := range in {
				if _, err := s.Create(ctx, p); err != nil {
					t.Fatalf("create %s: %v", p.Name, err)
				}
			}

			all, err := s.GetAll(ctx)
			if err != nil {
				t.Fatalf("get all: %v", err)
			}
			if len(all) != len(in) {
				t.Fatalf("expected %d products, got %d", len(in), len(all))
			}
			for i := range in {
				if all[i] != in[i] {
					t.Errorf("expected %+v, got %+v", in[i], all[i])
				}
			}
		})
	}
}

func TestStore_DuplicateName(t *testing.T) {
	for name, s := range stores() {
		t.Run(name, func(t *testing.T) {
			t.Cleanup(clearAllProducts)
			ctx := context.Background()

			first := models.Product{Name: "Laptop", Category: "Electronics", Quantity: 3, UnitPrice: 3500}
			if _, err := s.Create(ctx, first); err != nil {
				t.Fatalf("create: %v", err)
			}
			_, err := s.Create(ctx, models.Product{Name: "Laptop", Category: "Other", Quantity: 1, UnitPrice: 1})
			if !errors.Is(err, repo.ErrDuplicatedValueUnique) {
				t.Fatalf("expected duplicate error, got %v", err)
			}

			got, err := s.GetByName(ctx, "Laptop")
			if err != nil || got != first {
				t.Errorf("expected first record untouched, got %+v (%v)", got, err)
			}
		})
	}
}

func TestStore_ConcurrentCreateSameName(t *testing.T) {
	for name, s := range stores() {
		t.Run(name, func(t *testing.T) {
			t.Cleanup(clearAllProducts)
			ctx := context.Background()

			var wg sync.WaitGroup
			errs := make(chan error, 10)
			for i := range 10 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := s.Create(ctx, models.Product{Name: "Race", Category: "Other", Quantity: i, UnitPrice: 1})
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)

			ok := 0
			for err := range errs {
				switch {
				case err == nil:
					ok++
				case !errors.Is(err, repo.ErrDuplicatedValueUnique):
					t.Errorf("unexpected error: %v", err)
				}
			}
			if ok != 1 {
				t.Errorf("expected exactly one successful create, got %d", ok)
			}

			all, _ := s.GetAll(ctx)
			if len(all) != 1 {
				t.Errorf("expected 1 stored record, got %d", len(all))
			}
		})
	}
}

func TestStore_UpdateAndDelete(t *testing.T) {
	for name, s := range stores() {
		t.Run(name, func(t *testing.T) {
			t.Cleanup(clearAllProducts)
			ctx := context.Background()

			if _, err := s.Create(ctx, models.Product{Name: "Chair", Category: "Furniture", Quantity: 10, UnitPrice: 120.5}); err != nil {
				t.Fatalf("create: %v", err)
			}

			updated, err := s.Update(ctx, "Chair", 7, 99.9)
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			want := models.Product{Name: "Chair", Category: "Furniture", Quantity: 7, UnitPrice: 99.9}
			if updated != want {
				t.Errorf("expected %+v, got %+v", want, updated)
			}

			if _, err := s.Update(ctx, "Ghost", 1, 1); !errors.Is(err, repo.ErrProductNotFound) {
				t.Errorf("expected not found on update, got %v", err)
			}

			if err := s.Delete(ctx, "Chair"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := s.Delete(ctx, "Chair"); !errors.Is(err, repo.ErrProductNotFound) {
				t.Errorf("expected not found on second delete, got %v", err)
			}

			all, _ := s.GetAll(ctx)
			if len(all) != 0 {
				t.Errorf("expected empty store, got %s", fmt.Sprint(all))
			}
		})
	}
}
