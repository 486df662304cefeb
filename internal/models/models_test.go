package models

import (
	"testing"

	"github.com/oyilmaz/firsat/internal/types"
)

func TestWeightedValue(t *testing.T) {
	tests := []struct {
		name        string
		value       float64
		probability float64
		want        float64
	}{
		{"half probability", 1000, 50, 500},
		{"certain", 800, 100, 800},
		{"zero probability", 1000, 0, 0},
		{"zero value", 0, 75, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Deal{EstimatedValue: tt.value, Probability: tt.probability}
			if got := d.WeightedValue(); got != tt.want {
				t.Errorf("WeightedValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasAccount(t *testing.T) {
	with := Deal{AccountID: 7}
	if !with.HasAccount() {
		t.Error("deal with account id should report HasAccount")
	}

	without := Deal{}
	if without.HasAccount() {
		t.Error("deal without account id should not report HasAccount")
	}
}

func TestSummarize(t *testing.T) {
	stages := []*Stage{
		{ID: types.StageLead, Label: "Aday"},
		{ID: types.StageQuoteSent, Label: "Teklif Verildi"},
	}
	deals := []*Deal{
		{ID: 1, Status: types.StageLead, EstimatedValue: 1000, Probability: 50},
		{ID: 2, Status: types.StageLead, EstimatedValue: 500, Probability: 100},
		{ID: 3, Status: types.StageQuoteSent, EstimatedValue: 2000, Probability: 25},
		{ID: 4, Status: "Bogus", EstimatedValue: 9999, Probability: 100}, // unknown stage
	}

	summary := Summarize(deals, stages)

	if summary.DealCount != 3 {
		t.Errorf("DealCount = %d, want 3 (unknown stage excluded)", summary.DealCount)
	}
	if summary.TotalValue != 3500 {
		t.Errorf("TotalValue = %v, want 3500", summary.TotalValue)
	}
	if summary.WeightedValue != 1500 {
		t.Errorf("WeightedValue = %v, want 1500", summary.WeightedValue)
	}

	if len(summary.ByStage) != 2 {
		t.Fatalf("ByStage length = %d, want one entry per configured stage", len(summary.ByStage))
	}

	lead := summary.ByStage[0]
	if lead.Stage != types.StageLead || lead.Count != 2 || lead.Value != 1500 || lead.Weighted != 1000 {
		t.Errorf("Lead totals = %+v", lead)
	}

	quoteSent := summary.ByStage[1]
	if quoteSent.Count != 1 || quoteSent.Value != 2000 || quoteSent.Weighted != 500 {
		t.Errorf("Quote Sent totals = %+v", quoteSent)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, []*Stage{{ID: types.StageLead}})

	if summary.DealCount != 0 || summary.TotalValue != 0 {
		t.Errorf("empty summary = %+v, want zeros", summary)
	}
	if len(summary.ByStage) != 1 {
		t.Error("empty summary should still list every configured stage")
	}
	if summary.ByStage[0].Count != 0 {
		t.Error("stage with no deals should have zero count")
	}
}
