package components

const (
	// DealCardHeight is the fixed height of a deal card: thick border top
	// and bottom plus three content lines (title, account, value).
	DealCardHeight = 5

	// dealTitleMaxLength is the maximum display length for a deal title
	// before truncation
	dealTitleMaxLength = 26

	// ColumnContentWidth is the lipgloss content width of a stage column
	ColumnContentWidth = 32

	// ColumnTotalWidth is the rendered width of a column including borders
	ColumnTotalWidth = ColumnContentWidth + 2

	// CardWidth is the lipgloss content width of a deal card
	CardWidth = 28

	// BoardLeftMargin is the horizontal offset of the first column: the
	// left scroll indicator plus one space.
	BoardLeftMargin = 2

	// TabBarHeight is the height of the tab bar above the board
	TabBarHeight = 3

	columnBorderOverhead = 3 // top border + bottom padding + bottom border
	headerLines          = 1 // stage name and count
	topIndicatorLines    = 1 // empty line or "▲ more above"

	// ColumnOverhead is the number of non-card lines inside a column
	ColumnOverhead = columnBorderOverhead + headerLines + topIndicatorLines
)
