package unit

import (
	"context"
	"errors"
	"testing"

	cafeservice "cafescout/contexts/discovery/cafe-service"
	"cafescout/contexts/discovery/cafe-service/application/queries"
	domainerrors "cafescout/contexts/discovery/cafe-service/domain/errors"
	httptransport "cafescout/contexts/discovery/cafe-service/transport/http"
)

func createCafe(t *testing.T, module cafeservice.Module, name string, lat float64, lng float64, amenities []string) httptransport.CafeDTO {
	t.Helper()
	created, err := module.Handler.CreateCafeHandler(context.Background(), httptransport.CreateCafeRequest{
		Name:      name,
		Address:   name + " street",
		City:      "Lisbon",
		Latitude:  lat,
		Longitude: lng,
		Amenities: amenities,
	})
	if err != nil {
		t.Fatalf("create cafe %q failed: %v", name, err)
	}
	return created.Cafe
}

func TestCafeCreateAndGet(t *testing.T) {
	module := cafeservice.NewInMemoryModule(nil, nil)

	created := createCafe(t, module, "Bean There", 38.71, -9.14, []string{"wifi", "Outdoor "})
	if created.Status != "active" {
		t.Fatalf("expected active status, got %s", created.Status)
	}

	fetched, err := module.Handler.GetCafeHandler(context.Background(), created.CafeID)
	if err != nil {
		t.Fatalf("get cafe failed: %v", err)
	}
	if len(fetched.Cafe.Amenities) != 2 || fetched.Cafe.Amenities[1] != "outdoor" {
		t.Fatalf("expected normalized amenities, got %v", fetched.Cafe.Amenities)
	}
}

func TestCafeHideRemovesFromSearch(t *testing.T) {
	module := cafeservice.NewInMemoryModule(nil, nil)
	created := createCafe(t, module, "Bean There", 38.71, -9.14, nil)

	err := module.Handler.HideCafeHandler(context.Background(), created.CafeID, httptransport.HideCafeRequest{Reason: "closed down"})
	if err != nil {
		t.Fatalf("hide cafe failed: %v", err)
	}

	results, err := module.Handler.SearchCafesHandler(context.Background(), queries.SearchCafesQuery{
		MinLatitude:  38.0,
		MaxLatitude:  39.0,
		MinLongitude: -10.0,
		MaxLongitude: -9.0,
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results.Items) != 0 {
		t.Fatalf("hidden cafe must not appear in search, got %+v", results.Items)
	}
}

func TestCafeSearchFiltersAndRanking(t *testing.T) {
	module := cafeservice.NewInMemoryModule(nil, nil)

	top := createCafe(t, module, "Top Roast", 38.71, -9.14, []string{"wifi"})
	mid := createCafe(t, module, "Mid Brew", 38.72, -9.13, []string{"wifi"})
	createCafe(t, module, "Far Away", 41.15, -8.61, []string{"wifi"})

	module.Store.SetRatingAggregate(top.CafeID, 4.8, 12)
	module.Store.SetRatingAggregate(mid.CafeID, 3.1, 4)

	results, err := module.Handler.SearchCafesHandler(context.Background(), queries.SearchCafesQuery{
		MinLatitude:  38.0,
		MaxLatitude:  39.0,
		MinLongitude: -10.0,
		MaxLongitude: -9.0,
		Amenity:      "wifi",
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results.Items) != 2 {
		t.Fatalf("expected the two Lisbon cafes, got %d", len(results.Items))
	}
	if results.Items[0].Cafe.Name != "Top Roast" {
		t.Fatalf("expected rating-ordered results, got %+v", results.Items)
	}

	rated, err := module.Handler.SearchCafesHandler(context.Background(), queries.SearchCafesQuery{
		MinLatitude:  38.0,
		MaxLatitude:  39.0,
		MinLongitude: -10.0,
		MaxLongitude: -9.0,
		MinRating:    4.0,
	})
	if err != nil {
		t.Fatalf("min rating search failed: %v", err)
	}
	if len(rated.Items) != 1 || rated.Items[0].Cafe.CafeID != top.CafeID {
		t.Fatalf("expected only the highly rated cafe, got %+v", rated.Items)
	}
}

func TestCafeSearchRejectsBadBounds(t *testing.T) {
	module := cafeservice.NewInMemoryModule(nil, nil)

	_, err := module.Handler.SearchCafesHandler(context.Background(), queries.SearchCafesQuery{
		MinLatitude:  39.0,
		MaxLatitude:  38.0,
		MinLongitude: -10.0,
		MaxLongitude: -9.0,
	})
	if !errors.Is(err, domainerrors.ErrInvalidSearchBounds) {
		t.Fatalf("expected invalid bounds, got %v", err)
	}
}

func TestCafePartialUpdate(t *testing.T) {
	module := cafeservice.NewInMemoryModule(nil, nil)
	created := createCafe(t, module, "Bean There", 38.71, -9.14, nil)

	website := "https://beanthere.example"
	updated, err := module.Handler.UpdateCafeHandler(context.Background(), created.CafeID, httptransport.UpdateCafeRequest{
		Website: &website,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Cafe.Website != website {
		t.Fatalf("expected website updated, got %q", updated.Cafe.Website)
	}
	if updated.Cafe.Name != "Bean There" {
		t.Fatalf("untouched fields must be preserved, got %+v", updated.Cafe)
	}
}
