package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oyilmaz/firsat/internal/config"
	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/store"
	"github.com/oyilmaz/firsat/internal/types"
)

// stubUpdater fakes the backend status write
type stubUpdater struct {
	err    error
	calls  int
	lastID types.DealID
	lastTo types.StageID
}

func (u *stubUpdater) UpdateDealStatus(_ context.Context, id types.DealID, status types.StageID) (*models.Deal, error) {
	u.calls++
	u.lastID = id
	u.lastTo = status
	if u.err != nil {
		return nil, u.err
	}
	return &models.Deal{ID: id, Title: "deal", Status: status}, nil
}

func newTestStore(deals ...*models.Deal) *store.Store {
	s := store.New(testStages(), time.Minute)
	s.SetDeals(deals)
	return s
}

func TestCommit_SuccessMovesDeal(t *testing.T) {
	s := newTestStore(deal(1, types.StageLead), deal(2, types.StageOpportunity))
	updater := &stubUpdater{}
	c := NewCommitter(s, updater, testStages(), nil)

	cm, err := c.Begin(1, types.StageInvoiced)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	// optimistic: the card is already in the new column before Resolve
	views := Partition(s.Deals(), testStages())
	if ColumnFor(views, 1) != 2 {
		t.Error("optimistic write should place deal 1 in the invoiced column")
	}

	updated, err := cm.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	cm.Confirm(updated)

	views = Partition(s.Deals(), testStages())
	if got := ColumnFor(views, 1); got != 2 {
		t.Errorf("deal 1 in column %d after success, want 2", got)
	}
	if len(views[0].Deals) != 0 {
		t.Error("deal 1 should have left the lead column")
	}
	if updater.calls != 1 || updater.lastID != 1 || updater.lastTo != types.StageInvoiced {
		t.Errorf("backend called %d times with (%d, %q)", updater.calls, updater.lastID, updater.lastTo)
	}
}

func TestCommit_FailureRollsBack(t *testing.T) {
	s := newTestStore(deal(1, types.StageLead), deal(2, types.StageOpportunity))
	updater := &stubUpdater{err: errors.New("boom")}
	c := NewCommitter(s, updater, testStages(), nil)

	cm, err := c.Begin(1, types.StageInvoiced)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if _, err := cm.Resolve(context.Background()); err == nil {
		t.Fatal("Resolve() should surface the backend failure")
	}
	cm.Rollback()

	views := Partition(s.Deals(), testStages())
	if got := ColumnFor(views, 1); got != 0 {
		t.Errorf("deal 1 in column %d after rollback, want 0 (lead)", got)
	}
	if got := len(views[2].Deals); got != 0 {
		t.Errorf("invoiced column has %d deals after rollback, want 0", got)
	}
	// reappears exactly once
	total := 0
	for _, v := range views {
		total += len(v.Deals)
	}
	if total != 2 {
		t.Errorf("board holds %d deals after rollback, want 2", total)
	}
}

func TestCommit_StaleDealIsNoOp(t *testing.T) {
	s := newTestStore(deal(1, types.StageLead))
	updater := &stubUpdater{}
	c := NewCommitter(s, updater, testStages(), nil)

	// concurrent refresh removed the deal between drag-start and drop
	s.SetDeals([]*models.Deal{deal(2, types.StageOpportunity)})

	if _, err := c.Begin(1, types.StageInvoiced); !errors.Is(err, ErrStaleDeal) {
		t.Errorf("Begin() error = %v, want ErrStaleDeal", err)
	}
	if updater.calls != 0 {
		t.Error("stale deal must not reach the backend")
	}
}

func TestCommit_SameStageIsRejectedWithoutBackendCall(t *testing.T) {
	s := newTestStore(deal(1, types.StageLead))
	updater := &stubUpdater{}
	c := NewCommitter(s, updater, testStages(), nil)

	if _, err := c.Begin(1, types.StageLead); !errors.Is(err, ErrNoChange) {
		t.Errorf("Begin() error = %v, want ErrNoChange", err)
	}
	if updater.calls != 0 {
		t.Error("same-stage commit must not call the backend")
	}
	if d, _ := s.Deal(1); d.Status != types.StageLead {
		t.Error("same-stage commit must not mutate the store")
	}
}

func TestCommit_UnknownStageRejected(t *testing.T) {
	s := newTestStore(deal(1, types.StageLead))
	c := NewCommitter(s, &stubUpdater{}, testStages(), nil)

	if _, err := c.Begin(1, "Archived"); !errors.Is(err, ErrUnknownStage) {
		t.Errorf("Begin() error = %v, want ErrUnknownStage", err)
	}
}

func TestCommit_TransitionMatrixBlocks(t *testing.T) {
	s := newTestStore(deal(1, types.StageInvoiced))
	transitions := config.Transitions{
		"Invoiced": {}, // terminal stage, nothing allowed out
	}
	c := NewCommitter(s, &stubUpdater{}, testStages(), transitions)

	if _, err := c.Begin(1, types.StageLead); !errors.Is(err, ErrTransitionBlocked) {
		t.Errorf("Begin() error = %v, want ErrTransitionBlocked", err)
	}
	if d, _ := s.Deal(1); d.Status != types.StageInvoiced {
		t.Error("blocked transition must not mutate the store")
	}
}

func TestCommit_RollbackSkippedWhenRefreshReplacedDeal(t *testing.T) {
	s := newTestStore(deal(1, types.StageLead))
	updater := &stubUpdater{err: errors.New("boom")}
	c := NewCommitter(s, updater, testStages(), nil)

	cm, err := c.Begin(1, types.StageInvoiced)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	// refresh lands while the request is outstanding
	s.SetDeals([]*models.Deal{deal(3, types.StageOpportunity)})

	if _, err := cm.Resolve(context.Background()); err == nil {
		t.Fatal("Resolve() should still surface the failure")
	}
	cm.Rollback()
	if _, ok := s.Deal(1); ok {
		t.Error("rollback must not resurrect a deal the refresh removed")
	}
}

// Resolve runs on a command goroutine while the update loop keeps
// rendering. It must not touch the store: settlement happens through
// Confirm/Rollback after the result message arrives, so partitioning the
// deal list mid-flight is safe. Run under -race.
func TestCommit_PartitionSafeWhileResolveInFlight(t *testing.T) {
	s := newTestStore(deal(1, types.StageLead), deal(2, types.StageOpportunity))
	updater := &stubUpdater{err: errors.New("boom")}
	c := NewCommitter(s, updater, testStages(), nil)

	cm, err := c.Begin(1, types.StageInvoiced)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, resolveErr := cm.Resolve(context.Background())
		done <- resolveErr
	}()

	// The render path keeps reading deal statuses while the request is out
	for {
		select {
		case resolveErr := <-done:
			if resolveErr == nil {
				t.Fatal("Resolve() should surface the backend failure")
			}
			cm.Rollback()
			views := Partition(s.Deals(), testStages())
			if got := ColumnFor(views, 1); got != 0 {
				t.Errorf("deal 1 in column %d after rollback, want 0 (lead)", got)
			}
			return
		default:
			Partition(s.Deals(), testStages())
		}
	}
}

func TestCommit_SuccessInvalidatesSummary(t *testing.T) {
	s := newTestStore(deal(1, types.StageLead))
	c := NewCommitter(s, &stubUpdater{}, testStages(), nil)

	before := s.Summary()
	if before.ByStage[0].Count != 1 {
		t.Fatalf("lead count = %d, want 1", before.ByStage[0].Count)
	}

	cm, err := c.Begin(1, types.StageInvoiced)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	updated, err := cm.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	cm.Confirm(updated)

	after := s.Summary()
	if after.ByStage[0].Count != 0 || after.ByStage[2].Count != 1 {
		t.Errorf("summary not recomputed after commit: %+v", after.ByStage)
	}
}
