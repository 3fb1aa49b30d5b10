package services_test

import (
	"reflect"
	"testing"

	"github.com/Kennyy02/totomotorworx-shop/internal/notify"
	"github.com/Kennyy02/totomotorworx-shop/internal/repos"
	"github.com/Kennyy02/totomotorworx-shop/internal/services"
)

func TestAnalytics_MostAdded(t *testing.T) {
	db := memdb(t)
	svc := services.NewAnalyticsService(
		repos.NewCartRepo(db), repos.NewProductRepo(db), repos.NewServiceRepo(db))

	// Two users holding overlapping carts; id 77 left the catalog.
	if _, err := db.Exec(`UPDATE users SET cart_data='{"1":2,"9001":1,"77":4}' WHERE id=1`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO users(name,email,password_hash,cart_data)
	  VALUES ('Other','o@t.test','x','{"1":1,"2":0}')`); err != nil {
		t.Fatal(err)
	}

	ranked, err := svc.MostAdded()
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 3 {
		t.Fatalf("want 3 ranked items (zero quantities dropped), got %+v", ranked)
	}
	if ranked[0].ID != 77 || ranked[0].AddedCount != 4 || ranked[0].Name != "unknown" {
		t.Fatalf("want unknown placeholder ranked first with 4, got %+v", ranked[0])
	}
	if ranked[1].ID != 1 || ranked[1].AddedCount != 3 || ranked[1].Name != "Brake Pad Set" {
		t.Fatalf("want product 1 with summed count 3, got %+v", ranked[1])
	}
	if ranked[2].ID != 9001 || ranked[2].Name != "Oil Change Service" {
		t.Fatalf("want service joined by name, got %+v", ranked[2])
	}
}

func TestAnalytics_IdempotentForFixedSnapshot(t *testing.T) {
	db := memdb(t)
	svc := services.NewAnalyticsService(
		repos.NewCartRepo(db), repos.NewProductRepo(db), repos.NewServiceRepo(db))

	if _, err := db.Exec(`UPDATE users SET cart_data='{"1":1,"2":1,"9001":1}' WHERE id=1`); err != nil {
		t.Fatal(err)
	}

	first, err := svc.MostAdded()
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.MostAdded()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two runs on one snapshot diverged:\n%+v\n%+v", first, second)
	}
}

func TestAnalytics_MalformedCartSkipped(t *testing.T) {
	db := memdb(t)
	svc := services.NewAnalyticsService(
		repos.NewCartRepo(db), repos.NewProductRepo(db), repos.NewServiceRepo(db))

	if _, err := db.Exec(`UPDATE users SET cart_data='oops' WHERE id=1`); err != nil {
		t.Fatal(err)
	}

	ranked, err := svc.MostAdded()
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 0 {
		t.Fatalf("malformed blob counts as empty, got %+v", ranked)
	}
}

// Removals lower the live count: the ranking reflects currently-held
// quantity, not historical adds.
func TestAnalytics_RemovalReducesCount(t *testing.T) {
	db := memdb(t)
	hub := notify.NewHub()
	cartSvc := newCartService(db, hub)
	svc := services.NewAnalyticsService(
		repos.NewCartRepo(db), repos.NewProductRepo(db), repos.NewServiceRepo(db))

	if err := cartSvc.Add(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Remove(1, 1); err != nil {
		t.Fatal(err)
	}

	ranked, err := svc.MostAdded()
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 1 || ranked[0].AddedCount != 1 {
		t.Fatalf("want count 1 after retroactive removal, got %+v", ranked)
	}
}
