package board

import (
	"testing"

	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/types"
)

func testStages() []*models.Stage {
	return []*models.Stage{
		{ID: types.StageLead, Label: "Aday"},
		{ID: types.StageOpportunity, Label: "Fırsat"},
		{ID: types.StageInvoiced, Label: "Faturalandı"},
	}
}

func deal(id int, status types.StageID) *models.Deal {
	return &models.Deal{ID: types.DealID(id), Title: "deal", Status: status}
}

func TestPartition_EachDealInExactlyOneColumn(t *testing.T) {
	deals := []*models.Deal{
		deal(1, types.StageLead),
		deal(2, types.StageOpportunity),
		deal(3, types.StageLead),
	}

	views := Partition(deals, testStages())

	if len(views) != 3 {
		t.Fatalf("Partition() returned %d columns, want 3", len(views))
	}

	seen := map[types.DealID]int{}
	for _, v := range views {
		for _, d := range v.Deals {
			seen[d.ID]++
		}
	}
	for _, d := range deals {
		if seen[d.ID] != 1 {
			t.Errorf("deal %d appears in %d columns, want exactly 1", d.ID, seen[d.ID])
		}
	}
}

func TestPartition_StableOrderWithinColumn(t *testing.T) {
	deals := []*models.Deal{
		deal(5, types.StageLead),
		deal(2, types.StageLead),
		deal(9, types.StageLead),
	}

	views := Partition(deals, testStages())

	got := views[0].Deals
	want := []types.DealID{5, 2, 9}
	if len(got) != len(want) {
		t.Fatalf("lead column has %d deals, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("lead column position %d = deal %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestPartition_OrphanStatusExcludedEverywhere(t *testing.T) {
	deals := []*models.Deal{
		deal(1, types.StageLead),
		deal(2, "Archived"), // not a configured stage
	}

	views := Partition(deals, testStages())

	for _, v := range views {
		for _, d := range v.Deals {
			if d.ID == 2 {
				t.Errorf("orphan deal appeared in column %q", v.Stage.ID)
			}
		}
	}
	if len(views[0].Deals) != 1 {
		t.Errorf("lead column has %d deals, want 1", len(views[0].Deals))
	}
}

func TestPartition_EmptyColumnsPresent(t *testing.T) {
	deals := []*models.Deal{
		deal(1, types.StageLead),
		deal(2, types.StageOpportunity),
	}

	views := Partition(deals, testStages())

	if got := len(views[2].Deals); got != 0 {
		t.Errorf("invoiced column has %d deals, want 0", got)
	}
	if views[2].Stage.ID != types.StageInvoiced {
		t.Errorf("column 2 stage = %q, want %q", views[2].Stage.ID, types.StageInvoiced)
	}
}

func TestPartition_SpecScenario(t *testing.T) {
	// deals [{1,Lead},{2,Opportunity}] against [Lead, Opportunity, Invoiced]
	deals := []*models.Deal{
		deal(1, types.StageLead),
		deal(2, types.StageOpportunity),
	}

	views := Partition(deals, testStages())

	if len(views[0].Deals) != 1 || views[0].Deals[0].ID != 1 {
		t.Errorf("lead partition = %v, want [1]", dealIDs(views[0]))
	}
	if len(views[1].Deals) != 1 || views[1].Deals[0].ID != 2 {
		t.Errorf("opportunity partition = %v, want [2]", dealIDs(views[1]))
	}
	if len(views[2].Deals) != 0 {
		t.Errorf("invoiced partition = %v, want []", dealIDs(views[2]))
	}
}

func TestColumnFor(t *testing.T) {
	deals := []*models.Deal{
		deal(1, types.StageLead),
		deal(2, "Archived"),
	}
	views := Partition(deals, testStages())

	if got := ColumnFor(views, 1); got != 0 {
		t.Errorf("ColumnFor(1) = %d, want 0", got)
	}
	if got := ColumnFor(views, 2); got != -1 {
		t.Errorf("ColumnFor(orphan) = %d, want -1", got)
	}
}

func dealIDs(v ColumnView) []types.DealID {
	ids := make([]types.DealID, 0, len(v.Deals))
	for _, d := range v.Deals {
		ids = append(ids, d.ID)
	}
	return ids
}
