package market_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abouzarnameh/chatbot/internal/market"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *market.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return market.NewClient(srv.URL, "test-key", 5*time.Second, nil)
}

func TestClient_FetchCatalog_BareArray(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key query param = %q, want test-key", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"دلار","symbol":"USD","price":"58,400"}]`))
	})

	items, err := c.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("FetchCatalog: %v", err)
	}
	if len(items) != 1 || items[0].Symbol != "USD" {
		t.Errorf("items = %+v, want one USD item", items)
	}
}

func TestClient_FetchCatalog_WrappedArray(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"name":"یورو","symbol":"EUR","price":"63,100"}]}`))
	})

	items, err := c.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("FetchCatalog: %v", err)
	}
	if len(items) != 1 || items[0].Symbol != "EUR" {
		t.Errorf("items = %+v, want one EUR item", items)
	}
}

func TestClient_FetchCatalog_UnparseableBodyIsNoData(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	items, err := c.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("unparseable body should not be an error, got: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %+v, want empty catalog", items)
	}
}

func TestClient_FetchCatalog_ErrorStatus(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	if _, err := c.FetchCatalog(context.Background()); err == nil {
		t.Error("expected error for non-2xx status")
	}
}

func TestCache_SetAndSnapshot(t *testing.T) {
	t.Parallel()

	cache := market.NewCache()

	items, fetchedAt := cache.Snapshot()
	if len(items) != 0 || !fetchedAt.IsZero() {
		t.Errorf("fresh cache = (%d items, %v), want empty and zero time", len(items), fetchedAt)
	}

	cache.Set([]market.Item{{Symbol: "USD"}})
	items, fetchedAt = cache.Snapshot()
	if len(items) != 1 || fetchedAt.IsZero() {
		t.Errorf("cache after Set = (%d items, %v), want 1 item and non-zero time", len(items), fetchedAt)
	}

	// Snapshot is a copy.
	items[0].Symbol = "XXX"
	again, _ := cache.Snapshot()
	if again[0].Symbol != "USD" {
		t.Errorf("mutating snapshot changed cache: %q", again[0].Symbol)
	}
}
