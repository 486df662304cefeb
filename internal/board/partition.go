// Package board is the deal pipeline core: the column partitioner, the drag
// session state machine and the optimistic status committer. It has no
// rendering or toolkit dependencies; the TUI feeds it events and reads its
// state back out.
package board

import (
	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/types"
)

// ColumnView is one rendered column: a configured stage and the deals
// whose status matches it, in source-collection order.
type ColumnView struct {
	Stage *models.Stage
	Deals []*models.Deal
}

// Partition groups the flat deal collection into the configured stages,
// in configured order. The partition is stable: deals keep their relative
// order from the source collection and are never re-sorted.
//
// Deals whose status matches no stage are excluded from every column. That
// is deliberate tolerance for backend data lagging a stage-set change, not
// an error.
//
// Pure function, safe to call on every render.
func Partition(deals []*models.Deal, stages []*models.Stage) []ColumnView {
	index := make(map[types.StageID]int, len(stages))
	views := make([]ColumnView, len(stages))
	for i, s := range stages {
		index[s.ID] = i
		views[i] = ColumnView{Stage: s}
	}

	for _, d := range deals {
		i, ok := index[d.Status]
		if !ok {
			continue
		}
		views[i].Deals = append(views[i].Deals, d)
	}
	return views
}

// ColumnFor returns the partition column holding the given deal, or -1 when
// the deal's status matches no configured stage.
func ColumnFor(views []ColumnView, id types.DealID) int {
	for i, v := range views {
		for _, d := range v.Deals {
			if d.ID == id {
				return i
			}
		}
	}
	return -1
}
