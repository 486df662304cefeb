package board

import "github.com/oyilmaz/firsat/internal/types"

// CardGeom is the cell rectangle one deal card occupied in the last frame
type CardGeom struct {
	Deal types.DealID
	Y    int
	H    int
}

// ColumnGeom is the cell rectangle one column occupied in the last frame,
// plus the cards inside it.
type ColumnGeom struct {
	Stage types.StageID
	X     int
	W     int
	Y     int
	H     int
	Cards []CardGeom
}

// Layout is the frame geometry registry backing hit-testing. The renderer
// rebuilds it whenever column positions change; the session manager reads
// it through the HitTester interface. Not safe for concurrent use, both
// sides run on the UI goroutine.
type Layout struct {
	columns []ColumnGeom
}

var _ HitTester = (*Layout)(nil)

// NewLayout creates an empty layout
func NewLayout() *Layout {
	return &Layout{}
}

// SetColumns replaces the frame geometry
func (l *Layout) SetColumns(columns []ColumnGeom) {
	l.columns = columns
}

// StageAt returns the column whose rectangle contains the cell
func (l *Layout) StageAt(x, y int) (types.StageID, bool) {
	for _, col := range l.columns {
		if x >= col.X && x < col.X+col.W && y >= col.Y && y < col.Y+col.H {
			return col.Stage, true
		}
	}
	return "", false
}

// DealAt returns the card whose rectangle contains the cell
func (l *Layout) DealAt(x, y int) (types.DealID, types.StageID, bool) {
	for _, col := range l.columns {
		if x < col.X || x >= col.X+col.W {
			continue
		}
		for _, card := range col.Cards {
			if y >= card.Y && y < card.Y+card.H {
				return card.Deal, col.Stage, true
			}
		}
	}
	return 0, "", false
}
