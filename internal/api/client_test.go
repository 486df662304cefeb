package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oyilmaz/firsat/internal/config"
	"github.com/oyilmaz/firsat/internal/types"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.APIConfig{
		BaseURL:  server.URL,
		Token:    "test-token",
		TenantID: 3,
		Timeout:  5 * time.Second,
	})
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte("[]")); err != nil {
			t.Errorf("write failed: %v", err)
		}
	})

	if _, err := client.ListDeals(context.Background()); err != nil {
		t.Fatalf("ListDeals failed: %v", err)
	}

	if got.Get("Authorization") != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", got.Get("Authorization"))
	}
	if got.Get("X-Tenant-ID") != "3" {
		t.Errorf("X-Tenant-ID = %q, want 3", got.Get("X-Tenant-ID"))
	}
	if got.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
	if got.Get("Accept") != "application/json" {
		t.Errorf("Accept = %q, want application/json", got.Get("Accept"))
	}
}

func TestListDealsDecoding(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sales/deals" {
			t.Errorf("path = %q, want /sales/deals", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		body := `[
			{"id": 1, "title": "Kurumsal lisans", "source": "web", "status": "Lead",
			 "probability": 50, "estimated_value": 12500.5, "customer_id": 7,
			 "created_at": "2026-08-01T10:00:00Z",
			 "customer": {"id": 7, "title": "Yılmaz Ltd", "account_type": "Customer"}},
			{"id": 2, "title": "Donanım", "source": null, "status": "Quote Sent",
			 "probability": 75, "estimated_value": 800, "customer_id": null,
			 "created_at": "2026-08-02T10:00:00Z", "customer": null}
		]`
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("write failed: %v", err)
		}
	})

	deals, err := client.ListDeals(context.Background())
	if err != nil {
		t.Fatalf("ListDeals failed: %v", err)
	}
	if len(deals) != 2 {
		t.Fatalf("got %d deals, want 2", len(deals))
	}

	first := deals[0]
	if first.ID != 1 || first.Status != types.StageLead {
		t.Errorf("deal[0] = id %d status %v", first.ID, first.Status)
	}
	if first.Source != "web" || first.AccountID != 7 || first.AccountTitle != "Yılmaz Ltd" {
		t.Errorf("deal[0] fields = %q/%d/%q", first.Source, first.AccountID, first.AccountTitle)
	}

	// Null source and customer decode to zero values
	second := deals[1]
	if second.Source != "" || second.AccountID != 0 || second.AccountTitle != "" {
		t.Errorf("null fields should decode to zero values, got %q/%d/%q",
			second.Source, second.AccountID, second.AccountTitle)
	}
}

func TestUpdateDealStatusRequest(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		body := `{"id": 5, "title": "x", "status": "Quote Sent", "probability": 0,
			"estimated_value": 0, "created_at": "2026-08-01T10:00:00Z"}`
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("write failed: %v", err)
		}
	})

	deal, err := client.UpdateDealStatus(context.Background(), 5, types.StageQuoteSent)
	if err != nil {
		t.Fatalf("UpdateDealStatus failed: %v", err)
	}

	if gotMethod != "PATCH" {
		t.Errorf("method = %s, want PATCH", gotMethod)
	}
	if gotPath != "/sales/deals/5/status" {
		t.Errorf("path = %s, want /sales/deals/5/status", gotPath)
	}
	if gotBody["status"] != "Quote Sent" {
		t.Errorf("body status = %v, want Quote Sent", gotBody["status"])
	}
	if deal.Status != types.StageQuoteSent {
		t.Errorf("returned status = %v, want Quote Sent", deal.Status)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		detail   string
		sentinel error
	}{
		{"not found", 404, "Deal not found", ErrNotFound},
		{"unauthorized", 401, "Not authenticated", ErrUnauthorized},
		{"forbidden", 403, "Not enough permissions", ErrUnauthorized},
		{"validation", 422, "Invalid status transition", ErrValidation},
		{"bad request", 400, "Malformed payload", ErrValidation},
		{"server error", 500, "", ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				if err := json.NewEncoder(w).Encode(map[string]string{"detail": tt.detail}); err != nil {
					t.Errorf("encode failed: %v", err)
				}
			})

			_, err := client.GetDeal(context.Background(), 1)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v should match sentinel %v", err, tt.sentinel)
			}

			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("error %v should carry a StatusError", err)
			}
			if statusErr.Status != tt.status {
				t.Errorf("StatusError.Status = %d, want %d", statusErr.Status, tt.status)
			}
			if statusErr.Detail != tt.detail {
				t.Errorf("StatusError.Detail = %q, want %q", statusErr.Detail, tt.detail)
			}
		})
	}
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		if _, err := w.Write([]byte("[]")); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second})
	if _, err := client.ListDeals(context.Background()); err != nil {
		t.Fatalf("ListDeals failed: %v", err)
	}

	if got.Get("Authorization") != "" {
		t.Errorf("Authorization header should be absent, got %q", got.Get("Authorization"))
	}
	if got.Get("X-Tenant-ID") != "" {
		t.Errorf("X-Tenant-ID header should be absent for tenant 0, got %q", got.Get("X-Tenant-ID"))
	}
}
