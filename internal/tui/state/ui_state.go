package state

import "github.com/oyilmaz/firsat/internal/types"

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode    Mode = iota // Default board navigation mode
	HelpMode                  // Displaying help screen
	DealFormMode              // Create/edit deal form with huh
	DetailMode                // Deal detail popup (rendered markdown)
	DashboardMode             // Pipeline dashboard view
	AccountsMode              // Accounts list view
)

// UIState manages the user interface state.
// This includes navigation (column/deal selection), viewport scrolling,
// terminal dimensions, and the current interaction mode.
type UIState struct {
	// selectedColumn is the index of the currently selected stage column
	selectedColumn int

	// selectedDeal is the index of the currently selected deal within the selected column
	selectedDeal int

	// width is the current terminal width in characters
	width int

	// height is the current terminal height in characters
	height int

	// mode is the current interaction mode
	mode Mode

	// viewportOffset is the index of the leftmost visible column
	viewportOffset int

	// viewportSize is the number of columns that fit on the screen
	viewportSize int

	// dealScrollOffsets tracks the vertical scroll offset for each stage column.
	// Key: stage ID, Value: index of the first visible deal.
	dealScrollOffsets map[types.StageID]int

	// accountCursor is the selected row in the accounts view
	accountCursor int
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{
		mode:              NormalMode,
		viewportSize:      1, // recalculated when width is set
		dealScrollOffsets: make(map[types.StageID]int),
	}
}

// SelectedColumn returns the index of the currently selected column.
func (s *UIState) SelectedColumn() int {
	return s.selectedColumn
}

// SetSelectedColumn updates the selected column index.
func (s *UIState) SetSelectedColumn(index int) {
	s.selectedColumn = index
}

// SelectedDeal returns the index of the currently selected deal.
func (s *UIState) SelectedDeal() int {
	return s.selectedDeal
}

// SetSelectedDeal updates the selected deal index.
func (s *UIState) SetSelectedDeal(index int) {
	s.selectedDeal = index
}

// Width returns the current terminal width.
func (s *UIState) Width() int {
	return s.width
}

// SetWidth updates the terminal width and recalculates viewport size.
func (s *UIState) SetWidth(width int) {
	s.width = width
	s.calculateViewportSize()
}

// Height returns the current terminal height.
func (s *UIState) Height() int {
	return s.height
}

// SetHeight updates the terminal height.
func (s *UIState) SetHeight(height int) {
	s.height = height
}

// ContentHeight returns the available height for the main content area.
// This is terminal height minus tab bar and status bar, ensuring a minimum of 5.
func (s *UIState) ContentHeight() int {
	const tabBarHeight = 3    // tabs + gap line
	const statusBarHeight = 2 // status bar + gap line
	return max(s.height-tabBarHeight-statusBarHeight, 5)
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode updates the current interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// ViewportOffset returns the index of the leftmost visible column.
func (s *UIState) ViewportOffset() int {
	return s.viewportOffset
}

// SetViewportOffset updates the viewport offset.
func (s *UIState) SetViewportOffset(offset int) {
	s.viewportOffset = offset
}

// ViewportSize returns the number of columns that fit on screen.
func (s *UIState) ViewportSize() int {
	return s.viewportSize
}

// calculateViewportSize calculates how many stage columns can fit in the
// terminal width. Each column takes ColumnTotalWidth characters; 4 characters
// are reserved for margins. At least 1 column is always visible.
func (s *UIState) calculateViewportSize() {
	if s.width == 0 {
		s.viewportSize = 1
		return
	}

	const columnWidth = 36  // 32 content + 2 border + 2 spacing
	const reservedWidth = 4 // margins

	availableWidth := s.width - reservedWidth
	s.viewportSize = max(1, availableWidth/columnWidth)
}

// ScrollViewportLeft scrolls the viewport one column to the left.
// Returns true if scrolling occurred, false if already at leftmost position.
func (s *UIState) ScrollViewportLeft() bool {
	if s.viewportOffset > 0 {
		s.viewportOffset--
		return true
	}
	return false
}

// ScrollViewportRight scrolls the viewport one column to the right.
// Returns true if scrolling occurred, false if already at rightmost position.
func (s *UIState) ScrollViewportRight(columnsLen int) bool {
	if s.viewportOffset+s.viewportSize < columnsLen {
		s.viewportOffset++
		return true
	}
	return false
}

// EnsureSelectionVisible adjusts the viewport so the selected column is visible.
func (s *UIState) EnsureSelectionVisible(selectedColumn int) {
	if selectedColumn < s.viewportOffset {
		s.viewportOffset = selectedColumn
	}
	if selectedColumn >= s.viewportOffset+s.viewportSize {
		s.viewportOffset = selectedColumn - s.viewportSize + 1
	}
}

// ResetSelection resets column and deal selection to zero.
func (s *UIState) ResetSelection() {
	s.selectedColumn = 0
	s.selectedDeal = 0
	s.viewportOffset = 0
}

// DealScrollOffset returns the vertical scroll offset for a given stage column.
// Returns 0 if the column has no scroll offset set.
func (s *UIState) DealScrollOffset(stage types.StageID) int {
	if offset, ok := s.dealScrollOffsets[stage]; ok {
		return offset
	}
	return 0
}

// SetDealScrollOffset updates the vertical scroll offset for a given column.
func (s *UIState) SetDealScrollOffset(stage types.StageID, offset int) {
	s.dealScrollOffsets[stage] = max(0, offset)
}

// ScrollDealsUp moves the scroll offset up (decreases it) for a column.
// Returns true if scrolling occurred, false if already at top.
func (s *UIState) ScrollDealsUp(stage types.StageID) bool {
	offset := s.DealScrollOffset(stage)
	if offset > 0 {
		s.dealScrollOffsets[stage] = offset - 1
		return true
	}
	return false
}

// ScrollDealsDown moves the scroll offset down (increases it) for a column.
// Returns true if scrolling occurred, false if already at bottom.
func (s *UIState) ScrollDealsDown(stage types.StageID, dealCount int, visibleCount int) bool {
	offset := s.DealScrollOffset(stage)
	maxOffset := max(0, dealCount-visibleCount)
	if offset < maxOffset {
		s.dealScrollOffsets[stage] = offset + 1
		return true
	}
	return false
}

// EnsureDealVisible adjusts the scroll offset so the selected deal is visible.
// This should be called after deal navigation within a column.
func (s *UIState) EnsureDealVisible(stage types.StageID, selectedIdx int, visibleCount int) {
	offset := s.DealScrollOffset(stage)
	if selectedIdx < offset {
		s.dealScrollOffsets[stage] = selectedIdx
	}
	if selectedIdx >= offset+visibleCount {
		s.dealScrollOffsets[stage] = selectedIdx - visibleCount + 1
	}
}

// AccountCursor returns the selected row in the accounts view.
func (s *UIState) AccountCursor() int {
	return s.accountCursor
}

// SetAccountCursor updates the selected row in the accounts view.
func (s *UIState) SetAccountCursor(index int) {
	s.accountCursor = index
}
