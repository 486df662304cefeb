package models

import "github.com/oyilmaz/firsat/internal/types"

// StageTotal carries the aggregate numbers for one pipeline stage
type StageTotal struct {
	Stage    types.StageID
	Count    int
	Value    float64
	Weighted float64
}

// PipelineSummary is the dashboard aggregate: per-stage counts and value
// sums. It is derived client-side from the deal collection so the numbers
// always agree with what the board shows, optimistic moves included.
type PipelineSummary struct {
	ByStage       []StageTotal
	TotalValue    float64
	WeightedValue float64
	DealCount     int
}

// Summarize computes the pipeline summary of deals against the configured
// stages. Deals whose status matches no stage are excluded, the same
// tolerance the board partition applies.
func Summarize(deals []*Deal, stages []*Stage) *PipelineSummary {
	totals := make(map[types.StageID]*StageTotal, len(stages))
	summary := &PipelineSummary{}

	for _, s := range stages {
		totals[s.ID] = &StageTotal{Stage: s.ID}
	}

	for _, d := range deals {
		t, ok := totals[d.Status]
		if !ok {
			continue
		}
		t.Count++
		t.Value += d.EstimatedValue
		t.Weighted += d.WeightedValue()
		summary.DealCount++
		summary.TotalValue += d.EstimatedValue
		summary.WeightedValue += d.WeightedValue()
	}

	for _, s := range stages {
		summary.ByStage = append(summary.ByStage, *totals[s.ID])
	}
	return summary
}
