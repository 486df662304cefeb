package deal

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/oyilmaz/firsat/internal/api"
	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/store"
	"github.com/oyilmaz/firsat/internal/types"
)

// fakeBackend implements Backend in memory for testing the service layer
type fakeBackend struct {
	deals    []*models.Deal
	accounts []*models.Account
	quotes   []*models.QuoteSummary

	listErr   error
	getErr    error
	quotesErr error

	createdReqs []api.DealRequest
	updatedReqs []api.DealRequest
}

func (f *fakeBackend) ListDeals(ctx context.Context) ([]*models.Deal, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.deals, nil
}

func (f *fakeBackend) GetDeal(ctx context.Context, id types.DealID) (*models.Deal, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, d := range f.deals {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, fmt.Errorf("deal: %w", &api.StatusError{Status: 404})
}

func (f *fakeBackend) CreateDeal(ctx context.Context, req api.DealRequest) (*models.Deal, error) {
	f.createdReqs = append(f.createdReqs, req)
	return &models.Deal{ID: 100, Title: req.Title, Status: types.StageID(req.Status)}, nil
}

func (f *fakeBackend) UpdateDeal(ctx context.Context, id types.DealID, req api.DealRequest) (*models.Deal, error) {
	f.updatedReqs = append(f.updatedReqs, req)
	return &models.Deal{ID: id, Title: req.Title, Status: types.StageID(req.Status)}, nil
}

func (f *fakeBackend) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.accounts, nil
}

func (f *fakeBackend) ListQuotesForDeal(ctx context.Context, dealID types.DealID) ([]*models.QuoteSummary, error) {
	if f.quotesErr != nil {
		return nil, f.quotesErr
	}
	return f.quotes, nil
}

func testStore() *store.Store {
	return store.New(models.DefaultStages(), time.Minute)
}

func testSnapshot(t *testing.T) *store.Snapshot {
	t.Helper()
	snap, err := store.OpenSnapshot(context.Background(), filepath.Join(t.TempDir(), "snap.db"))
	if err != nil {
		t.Fatalf("OpenSnapshot failed: %v", err)
	}
	t.Cleanup(func() { _ = snap.Close() })
	return snap
}

func TestRefreshDealsPopulatesStore(t *testing.T) {
	backend := &fakeBackend{deals: []*models.Deal{
		{ID: 1, Title: "Kurumsal lisans", Status: types.StageLead},
	}}
	st := testStore()
	svc := NewService(backend, st, nil)

	deals, err := svc.RefreshDeals(context.Background())
	if err != nil {
		t.Fatalf("RefreshDeals failed: %v", err)
	}
	if len(deals) != 1 {
		t.Fatalf("got %d deals, want 1", len(deals))
	}
	if svc.Offline() {
		t.Error("service should not be offline after a successful refresh")
	}
	if len(st.Deals()) != 1 {
		t.Error("store should hold the refreshed deals")
	}
	if !st.Fresh(store.KeyDeals) {
		t.Error("deals key should be fresh after refresh")
	}
}

func TestRefreshDealsFallsBackToSnapshot(t *testing.T) {
	snap := testSnapshot(t)
	ctx := context.Background()

	// Seed the snapshot through a successful refresh first
	backend := &fakeBackend{deals: []*models.Deal{
		{ID: 1, Title: "Kurumsal lisans", Status: types.StageLead, CreatedAt: time.Now()},
	}}
	st := testStore()
	svc := NewService(backend, st, snap)
	if _, err := svc.RefreshDeals(ctx); err != nil {
		t.Fatalf("seeding refresh failed: %v", err)
	}

	// Now the backend goes away
	backend.listErr = errors.New("connection refused")

	deals, err := svc.RefreshDeals(ctx)
	if err != nil {
		t.Fatalf("RefreshDeals with snapshot fallback failed: %v", err)
	}
	if len(deals) != 1 || deals[0].Title != "Kurumsal lisans" {
		t.Errorf("fallback deals = %v, want the snapshotted deal", deals)
	}
	if !svc.Offline() {
		t.Error("service should report offline when serving snapshot data")
	}
	if st.Fresh(store.KeyDeals) {
		t.Error("snapshot-served deals must not be marked fresh")
	}
}

func TestRefreshDealsRejectionsDoNotFallBack(t *testing.T) {
	snap := testSnapshot(t)
	ctx := context.Background()

	backend := &fakeBackend{deals: []*models.Deal{{ID: 1, Title: "x", Status: types.StageLead, CreatedAt: time.Now()}}}
	st := testStore()
	svc := NewService(backend, st, snap)
	if _, err := svc.RefreshDeals(ctx); err != nil {
		t.Fatalf("seeding refresh failed: %v", err)
	}

	// An auth failure is a real answer, not a connectivity problem
	backend.listErr = fmt.Errorf("list: %w", &api.StatusError{Status: 401})

	_, err := svc.RefreshDeals(ctx)
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized surfacing, not snapshot fallback", err)
	}
}

func TestRefreshDealsNoSnapshotNoFallback(t *testing.T) {
	backend := &fakeBackend{listErr: errors.New("connection refused")}
	svc := NewService(backend, testStore(), nil)

	if _, err := svc.RefreshDeals(context.Background()); err == nil {
		t.Error("refresh without snapshot should surface the transport error")
	}
}

func TestGetDealDetail(t *testing.T) {
	account := &models.Account{ID: 7, Title: "Yılmaz Ltd"}
	backend := &fakeBackend{
		deals: []*models.Deal{
			{ID: 1, Title: "Kurumsal lisans", Status: types.StageLead, AccountID: 7},
		},
		quotes: []*models.QuoteSummary{
			{ID: 11, QuoteNo: "TKL-2026-001", Version: 2, Status: models.QuoteSent, TotalAmount: 9000},
		},
	}
	st := testStore()
	st.SetAccounts([]*models.Account{account})
	svc := NewService(backend, st, nil)

	detail, err := svc.GetDealDetail(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetDealDetail failed: %v", err)
	}
	if detail.Title != "Kurumsal lisans" {
		t.Errorf("Title = %q", detail.Title)
	}
	if detail.Account == nil || detail.Account.ID != 7 {
		t.Error("detail should carry the account from the store")
	}
	if len(detail.Quotes) != 1 || detail.Quotes[0].QuoteNo != "TKL-2026-001" {
		t.Errorf("Quotes = %v, want the backend's quote list", detail.Quotes)
	}
}

func TestGetDealDetailQuoteFailureDegrades(t *testing.T) {
	backend := &fakeBackend{
		deals:     []*models.Deal{{ID: 1, Title: "x", Status: types.StageLead}},
		quotesErr: errors.New("quotes endpoint down"),
	}
	svc := NewService(backend, testStore(), nil)

	detail, err := svc.GetDealDetail(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetDealDetail should tolerate quote failures, got %v", err)
	}
	if len(detail.Quotes) != 0 {
		t.Error("quotes should be empty when the fetch failed")
	}
}

func TestGetDealDetailNotFound(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend, testStore(), nil)

	_, err := svc.GetDealDetail(context.Background(), 99)
	if !errors.Is(err, ErrDealNotFound) {
		t.Errorf("error = %v, want ErrDealNotFound", err)
	}

	if _, err := svc.GetDealDetail(context.Background(), 0); !errors.Is(err, ErrInvalidDealID) {
		t.Errorf("error = %v, want ErrInvalidDealID for id 0", err)
	}
}

func TestCreateDealValidation(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend, testStore(), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateDealRequest
		want error
	}{
		{"empty title", CreateDealRequest{Status: types.StageLead}, ErrEmptyTitle},
		{"negative value", CreateDealRequest{Title: "x", EstimatedValue: -1}, ErrNegativeValue},
		{"probability over 100", CreateDealRequest{Title: "x", Probability: 101}, ErrInvalidProbability},
		{"negative probability", CreateDealRequest{Title: "x", Probability: -1}, ErrInvalidProbability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateDeal(ctx, tt.req); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	if len(backend.createdReqs) != 0 {
		t.Error("invalid requests must not reach the backend")
	}
}

func TestCreateDealInvalidatesStore(t *testing.T) {
	backend := &fakeBackend{}
	st := testStore()
	st.SetDeals(nil)
	svc := NewService(backend, st, nil)

	created, err := svc.CreateDeal(context.Background(), CreateDealRequest{
		Title:  "Yeni fırsat",
		Status: types.StageLead,
	})
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}
	if created.ID != 100 {
		t.Errorf("created ID = %d, want backend's 100", created.ID)
	}
	if st.Fresh(store.KeyDeals) {
		t.Error("deals key should be invalidated after create so the list refetches")
	}
}

func TestUpdateDealReplacesStoreCopy(t *testing.T) {
	backend := &fakeBackend{}
	st := testStore()
	st.SetDeals([]*models.Deal{{ID: 5, Title: "eski", Status: types.StageLead}})
	svc := NewService(backend, st, nil)

	updated, err := svc.UpdateDeal(context.Background(), UpdateDealRequest{
		DealID: 5,
		CreateDealRequest: CreateDealRequest{
			Title:  "yeni başlık",
			Status: types.StageLead,
		},
	})
	if err != nil {
		t.Fatalf("UpdateDeal failed: %v", err)
	}
	if updated.Title != "yeni başlık" {
		t.Errorf("Title = %q", updated.Title)
	}

	d, ok := st.Deal(5)
	if !ok || d.Title != "yeni başlık" {
		t.Error("store should hold the backend's updated copy")
	}
}
