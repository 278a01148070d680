package scout_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vill-8/nursery-scout/internal/scout"
)

func TestClient_Scout_Success(t *testing.T) {
	var gotBody scout.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/scout" {
			t.Errorf("path = %q, want /api/scout", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"query":       "Nuna PIPA",
			"deals_found": 4,
		})
	}))
	defer srv.Close()

	name := "PIPA"
	resp, err := scout.NewClient(srv.URL).Scout(context.Background(), scout.Request{
		Brand:    "Nuna",
		ItemName: &name,
		HuntID:   "hunt-1",
		MaxPrice: 500,
	})
	if err != nil {
		t.Fatalf("Scout() unexpected error: %v", err)
	}
	if resp.DealsFound != 4 {
		t.Errorf("DealsFound = %d, want 4", resp.DealsFound)
	}
	if gotBody.Brand != "Nuna" || gotBody.HuntID != "hunt-1" || gotBody.MaxPrice != 500 {
		t.Errorf("worker received %+v", gotBody)
	}
	if gotBody.ItemName == nil || *gotBody.ItemName != "PIPA" {
		t.Errorf("item_name not forwarded: %v", gotBody.ItemName)
	}
}

func TestClient_Scout_WorkerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := scout.NewClient(srv.URL).Scout(context.Background(), scout.Request{HuntID: "h"})
	if err == nil {
		t.Fatal("Scout() against a 500 worker should return an error")
	}
}

func TestClient_Scout_WorkerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening any more

	_, err := scout.NewClient(srv.URL).Scout(context.Background(), scout.Request{HuntID: "h"})
	if err == nil {
		t.Fatal("Scout() against a dead worker should return an error")
	}
}
